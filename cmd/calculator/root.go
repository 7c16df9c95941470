package main

import (
	"fmt"
	"os"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"

	"github.com/spf13/cobra"
)

// cfg is resolved once per invocation before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "calculator",
	Short: "Four-function calculator served over HTTP, MCP and the terminal",
	Long: `calculator keeps one calculator per session and drives it with button
presses: digits, a decimal point, + - * ÷, = to evaluate, AC to clear and
DEL for backspace.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		cfg = loaded

		return observability.InitLogger(observability.LogOptions{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.SyncLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML file overriding environment settings")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
