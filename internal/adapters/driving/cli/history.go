package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04"

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List processed contracts",
	Long:  `List processed contracts, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the contract history to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var resendCmd = &cobra.Command{
	Use:   "resend <id>",
	Short: "Retry delivery of a kept contract",
	Long: `Deliver the file of an earlier request again. Only contracts whose
delivery failed, or that were generated with --dry-run, can be resent.`,
	Args: cobra.ExactArgs(1),
	RunE: runResend,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records (0 = all)")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resendCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	records, err := app.History.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	printRecords(cmd, records)
	return nil
}

func printRecords(cmd *cobra.Command, records []domain.ContractRecord) {
	if len(records) == 0 {
		cmd.Println("No contracts processed yet.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tLOCATEE\tFILE")
	for i := range records {
		r := &records[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Local().Format(timeLayout), r.Status, r.Locatee, r.Filename)
	}
	_ = w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	var buf bytes.Buffer
	if err := app.History.Export(cmd.Context(), &buf); err != nil {
		return fmt.Errorf("exporting history: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmd.Printf("History exported to %s\n", path)
	return nil
}

func runResend(cmd *cobra.Command, args []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	res, err := app.Contracts.Resend(cmd.Context(), args[0])
	return printOutcome(cmd, res, err)
}
