package main

import (
	"github.com/cardio-onc/qtwizard/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts one wizard session as an MCP Server.
This allows AI agents to walk the checklist through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("transport") {
			app.Config.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("addr") {
			app.Config.MCP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if err := app.Config.Validate(); err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()
		return cli.ServeMCP(ctx, app)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport type (stdio, sse)")
	mcpCmd.Flags().String("addr", ":8081", "Address for the SSE transport")
}
