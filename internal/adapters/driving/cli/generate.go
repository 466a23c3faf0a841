package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

var (
	generateFields []string
	generateJSON   string
	generateDryRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and deliver a contract",
	Long: `Fill the template with a tenant's details and deliver the result.

Fields are given as key=value pairs, as a JSON object read from a file, or
both; --field values win over the JSON file. Use "-" to read JSON from stdin.

Examples:
  leasefill generate --field nome_do_locatario="Maria Silva" --field estado_civil=solteira ...
  leasefill generate --json tenant.json --dry-run`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateFields, "field", "f", nil, "field as key=value (repeatable)")
	generateCmd.Flags().StringVar(&generateJSON, "json", "", `JSON file with the fields ("-" for stdin)`)
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "generate without delivering")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	fields := make(map[string]string)
	if generateJSON != "" {
		if err := readJSONFields(cmd, generateJSON, fields); err != nil {
			return err
		}
	}
	if err := parseFieldFlags(generateFields, fields); err != nil {
		return err
	}

	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	res, err := app.Contracts.Process(cmd.Context(), domain.ContractRequest{
		Fields: fields,
		DryRun: generateDryRun,
	})
	return printOutcome(cmd, res, err)
}

// parseFieldFlags adds key=value pairs to fields.
func parseFieldFlags(pairs []string, fields map[string]string) error {
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return fmt.Errorf("invalid field %q: expected key=value", pair)
		}
		fields[k] = v
	}
	return nil
}

// readJSONFields decodes a JSON object of string or number values into fields.
// A numeric zero leaves the field unset.
func readJSONFields(cmd *cobra.Command, path string, fields map[string]string) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening fields file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}

	for k, v := range raw {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case json.Number:
			if f, err := val.Float64(); err == nil && f == 0 {
				continue
			}
			fields[k] = val.String()
		case nil:
			// null leaves the field unset
		default:
			return fmt.Errorf("field %q: expected a string or number", k)
		}
	}
	return nil
}

// printOutcome reports a pipeline result and returns err so the exit status
// reflects any failure.
func printOutcome(cmd *cobra.Command, res *domain.ContractResult, err error) error {
	if res != nil && res.Filename != "" {
		cmd.Printf("File: %s\n", res.Filename)
	}
	if res != nil && res.ID != "" {
		cmd.Printf("ID: %s\n", res.ID)
	}
	if res != nil && len(res.Unresolved) > 0 {
		cmd.Printf("Unresolved tokens (%d):\n", len(res.Unresolved))
		for _, tok := range res.Unresolved {
			cmd.Printf("  %s\n", tok)
		}
	}

	if err != nil {
		kind := domain.KindOf(err)
		if missing := domain.MissingFields(err); len(missing) > 0 {
			cmd.Printf("Missing fields: %s\n", strings.Join(missing, ", "))
		}
		if kind == domain.KindDelivery && res != nil && res.ID != "" {
			cmd.Printf("The file was kept. Retry with: leasefill resend %s\n", res.ID)
		}
		return fmt.Errorf("%s: %w", kind, err)
	}
	if res == nil {
		return errors.New("no result")
	}

	if res.Delivered {
		cmd.Println("Delivered: yes")
	} else {
		cmd.Println("Delivered: no")
	}
	cmd.Println(res.Message)
	return nil
}
