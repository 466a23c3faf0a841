package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/httpapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST surface.

Endpoints:
  POST /generate-contract   fill, generate and deliver (add ?dry_run=true to skip delivery)
  GET  /health              liveness and version
  GET  /config              non-secret configuration view
  GET  /api-docs            endpoints, required fields and an example payload

The port comes from --port, then PORT, then the config file (default 5000).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(func(o *Options) {
		if servePort > 0 {
			o.Port = servePort
		}
	})
	if err != nil {
		return err
	}
	defer app.shutdown()

	server, err := httpapi.NewServer(httpapi.Config{
		Version:  version,
		Settings: app.Settings,
	}, app.Contracts, app.Log)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", app.Settings.Server.Port)
	cmd.Printf("Listening on http://localhost%s\n", addr)
	if !app.Settings.Delivery.IsConfigured() {
		cmd.Println("Warning: delivery is not configured; requests will fail after generation.")
	}
	return server.ListenAndServe(cmd.Context(), addr)
}
