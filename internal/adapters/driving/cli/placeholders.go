package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
)

const watchDebounce = 300 * time.Millisecond

var placeholdersWatch bool

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders",
	Short: "List the placeholders in the template",
	Long: `List every {{ ... }} placeholder in the template with where it appears,
then check each token the active schema expects: found as written, found
under a different spelling (variant), or missing.

With --watch the report is printed again whenever the template is saved.`,
	Args: cobra.NoArgs,
	RunE: runPlaceholders,
}

func init() {
	placeholdersCmd.Flags().BoolVarP(&placeholdersWatch, "watch", "w", false, "re-run when the template changes")
	rootCmd.AddCommand(placeholdersCmd)
}

// Report colours follow the form's theme.
var (
	reportTheme   = styles.DefaultTheme()
	reportTitle   = lipgloss.NewStyle().Bold(true).Foreground(reportTheme.Primary)
	reportMuted   = lipgloss.NewStyle().Foreground(reportTheme.Muted)
	reportFound   = lipgloss.NewStyle().Foreground(reportTheme.Success)
	reportVariant = lipgloss.NewStyle().Foreground(reportTheme.Warning)
	reportMissing = lipgloss.NewStyle().Foreground(reportTheme.Error)
)

func runPlaceholders(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	path := app.Settings.Template.Path
	schema := app.Contracts.Schema()
	ctx := cmd.Context()

	if err := printPlaceholders(ctx, cmd, app.Inspector, path, schema); err != nil {
		if !placeholdersWatch {
			return err
		}
		// The template may not exist yet; keep watching for it.
		cmd.PrintErrf("Error: %v\n", err)
	}
	if !placeholdersWatch {
		return nil
	}

	return watchTemplate(ctx, path, func() {
		cmd.Println()
		if err := printPlaceholders(ctx, cmd, app.Inspector, path, schema); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

func printPlaceholders(
	ctx context.Context,
	cmd *cobra.Command,
	inspector driving.TemplateInspector,
	path string,
	schema domain.FieldSchema,
) error {
	report, err := inspector.ListPlaceholders(ctx, path)
	if err != nil {
		return err
	}
	checks, err := inspector.Check(ctx, path, schema)
	if err != nil {
		return err
	}
	cmd.Print(renderReport(report, checks))
	return nil
}

// renderReport formats the occurrences and the token check.
func renderReport(report *domain.PlaceholderReport, checks []domain.TokenCheck) string {
	var b strings.Builder

	b.WriteString(reportTitle.Render("Template: " + report.Path))
	b.WriteString("\n\n")

	if len(report.Occurrences) == 0 {
		b.WriteString(reportMuted.Render("No placeholders found."))
		b.WriteString("\n")
	}
	for _, occ := range report.Occurrences {
		fmt.Fprintf(&b, "%s  %s\n", reportMuted.Render(occ.Location.String()), strings.Join(occ.Tokens, " "))
	}

	fmt.Fprintf(&b, "\n%d distinct tokens\n\n", len(report.Tokens))

	rows := make([][]string, 0, len(checks))
	missing := 0
	for _, c := range checks {
		rows = append(rows, []string{c.Expected, renderStatus(c.Status), c.Variant})
		if c.Status == domain.TokenMissing {
			missing++
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("EXPECTED", "STATUS", "FOUND AS").
		Rows(rows...)
	b.WriteString(t.String())
	b.WriteString("\n")

	if missing > 0 {
		b.WriteString(reportMissing.Render(fmt.Sprintf("%d expected tokens missing", missing)))
	} else {
		b.WriteString(reportFound.Render("All expected tokens present"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderStatus(s domain.TokenStatus) string {
	switch s {
	case domain.TokenFound:
		return reportFound.Render(string(s))
	case domain.TokenVariant:
		return reportVariant.Render(string(s))
	default:
		return reportMissing.Render(string(s))
	}
}

// watchTemplate calls onChange after writes to path settle, until ctx ends.
// The directory is watched so editors that replace the file are followed.
func watchTemplate(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	name := filepath.Base(path)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				settle = time.After(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", path, err)
		case <-settle:
			settle = nil
			onChange()
		}
	}
}
