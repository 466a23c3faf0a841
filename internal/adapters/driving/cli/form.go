package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui"
	"github.com/custodia-labs/leasefill/internal/core/domain"
)

var formDryRun bool

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Enter a tenant's details interactively",
	Long: `Ask for each field of the active schema, then generate and deliver the
contract.

On a terminal an interactive form is shown:
  tab/↓        next field
  shift+tab/↑  previous field
  enter        next field, or submit on the last one
  esc          cancel

When stdin is not a terminal one line is read per field.`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	formCmd.Flags().BoolVar(&formDryRun, "dry-run", false, "generate without delivering")
	rootCmd.AddCommand(formCmd)
}

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runForm(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	in := cmd.InOrStdin()
	if isTerminal(in) {
		res, err := tui.Run(cmd.Context(), &tui.Ports{Contracts: app.Contracts},
			tui.Options{DryRun: formDryRun}, in, cmd.OutOrStdout())
		if errors.Is(err, tui.ErrCancelled) {
			cmd.Println("Cancelled.")
			return nil
		}
		return printOutcome(cmd, res, err)
	}

	fields, err := promptFields(cmd, bufio.NewReader(in), app.Contracts.Schema())
	if err != nil {
		return err
	}
	res, err := app.Contracts.Process(cmd.Context(), domain.ContractRequest{Fields: fields, DryRun: formDryRun})
	return printOutcome(cmd, res, err)
}

// promptFields reads one line per input field of schema.
func promptFields(cmd *cobra.Command, reader *bufio.Reader, schema domain.FieldSchema) (map[string]string, error) {
	fields := make(map[string]string)
	for _, spec := range schema.Inputs() {
		cmd.Printf("%s: ", spec.Label)
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		fields[spec.Key] = line
	}
	return fields, nil
}

// readLine reads one line without its terminator. A final line without a
// newline is accepted; an empty stream is an error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("input ended before all fields were entered")
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
