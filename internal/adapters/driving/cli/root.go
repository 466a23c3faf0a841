// Package cli provides the leasefill command-line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags. Empty values leave the resolved setting untouched.
var (
	configDir    string
	verbose      bool
	templatePath string
	outputDir    string
	schemaName   string
	targetName   string
)

var rootCmd = &cobra.Command{
	Use:   "leasefill",
	Short: "Fill lease contract templates and deliver them",
	Long: `leasefill fills a DOCX lease contract template with a tenant's details
and sends the generated document to a messaging gateway or webhook.

Settings are resolved from flags, then environment variables (a .env file in
the working directory is loaded first), then ~/.leasefill/config.toml, then
built-in defaults.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.leasefill)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&templatePath, "template", "", "DOCX template path")
	pf.StringVar(&outputDir, "output-dir", "", "directory generated contracts are written to")
	pf.StringVar(&schemaName, "schema", "", "field schema (basic or extended)")
	pf.StringVar(&targetName, "target", "", "delivery target (evolution or webhook)")
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}

// SetVersion sets the version reported by the CLI, HTTP and MCP surfaces.
func SetVersion(v string) {
	version = v
}

// Options are the values a run was started with.
type Options struct {
	ConfigDir string
	Verbose   bool

	// Explicit overrides. Zero values mean "not set".
	TemplatePath string
	OutputDir    string
	Schema       string
	Target       string
	Port         int
}

// App holds the services one command runs against.
type App struct {
	Settings        domain.AppSettings
	SettingsService driving.SettingsService
	Contracts       driving.ContractService
	Inspector       driving.TemplateInspector
	History         driving.HistoryService
	Log             *logger.Logger

	// Close releases resources such as the history database. May be nil.
	Close func() error
}

// shutdown releases the app's resources.
func (a *App) shutdown() {
	if a.Close == nil {
		return
	}
	if err := a.Close(); err != nil && a.Log != nil {
		a.Log.Warn("closing: %v", err)
	}
}

// AppFactory builds the services for a run.
type AppFactory func(Options) (*App, error)

var appFactory AppFactory

// SetAppFactory sets the function commands use to build their services.
func SetAppFactory(f AppFactory) {
	appFactory = f
}

// currentOptions collects the global flags.
func currentOptions() Options {
	return Options{
		ConfigDir:    configDir,
		Verbose:      verbose,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Schema:       schemaName,
		Target:       targetName,
	}
}

// loadApp builds the services with the global flags, letting adjust tweak the
// options first.
func loadApp(adjust func(*Options)) (*App, error) {
	if appFactory == nil {
		return nil, errors.New("application not configured")
	}
	opts := currentOptions()
	if adjust != nil {
		adjust(&opts)
	}
	return appFactory(opts)
}
