package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose contract generation to assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can generate
contracts and inspect the template.

Tools:
  generate_contract   fill, generate and deliver a contract
  resend_contract     retry delivery of a kept file
  list_placeholders   list the placeholders found in a template

By default the server communicates over stdio. Use --port to serve streamable
HTTP instead.

Examples:
  leasefill mcp serve
  leasefill mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(nil)
	if err != nil {
		return err
	}
	defer app.shutdown()

	server, err := mcp.NewServer(&mcp.Ports{
		Contracts:    app.Contracts,
		Inspector:    app.Inspector,
		History:      app.History,
		TemplatePath: app.Settings.Template.Path,
	}, version)
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		// stdout carries the protocol; nothing else may be printed.
		app.Log.Debug("mcp: serving on stdio")
		return server.Run(cmd.Context())
	}

	cmd.Printf("MCP endpoint: http://localhost:%d\n", mcpPort)
	return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", mcpPort))
}
