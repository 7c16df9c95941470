package main

import (
	"go-chi-calculator/internal/mcpserver"
	"go-chi-calculator/internal/observability"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server on stdio",
	Long: `Exposes the calculator as MCP tools (press_keys, evaluate, reset_session)
over standard input and output. Logs go to standard error so they never
corrupt the JSON-RPC stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closeStore, err := newSessionManager(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcpserver.New(sessions, Version, observability.Logger.Named("mcp"))
		observability.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
