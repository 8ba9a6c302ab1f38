package cmd

import (
	"context"
	"os"

	applog "github.com/chris-regnier/famcal/internal/log"
	"github.com/chris-regnier/famcal/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the family
calendar over stdio transport. This allows MCP clients to read and edit the
calendar.

Available tools:
  - list_persons: List persons with their event counts
  - list_events: List a person's events, optionally for one month
  - month_grid: Show the days of a month with a person's events
  - save_event: Create or update the event on a date
  - delete_event: Delete the event on a date
  - add_person: Add a person
  - remove_person: Remove a person and their events

Example client config:
  {
    "mcpServers": {
      "famcal": {
        "command": "/path/to/famcal",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Session is already opened in PersistentPreRunE
	if sess == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(sess, mcptools.Options{
		Locale:       appConfig.Locale,
		DefaultColor: appConfig.DefaultColor,
	})

	// Log to stderr (stdout is reserved for MCP protocol)
	applog.SetOutput(os.Stderr)
	applog.Info("starting famcal MCP server", "transport", "stdio", "storage", appConfig.Storage, "data_dir", appConfig.DataDir)

	// Run server with stdio transport
	// This blocks until the transport is closed
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
