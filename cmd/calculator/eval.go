package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go-chi-calculator/internal/calculator"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <keys>...",
	Short: "Press a sequence of keys on a fresh calculator and print the result",
	Example: `  calculator eval 12 + 3 =
  calculator eval "1.5*4="
  calculator eval --json 7 ÷ 0 =`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runEval(cmd.OutOrStdout(), args, asJSON)
	},
}

// runEval applies keys to the empty state. The readout is printed as
// "<previous>\n<current>" with an empty previous line omitted; with asJSON
// the raw state is printed instead.
func runEval(out io.Writer, keys []string, asJSON bool) error {
	actions, err := calculator.ParseKeys(strings.Join(keys, " "))
	if err != nil {
		return err
	}
	state := calculator.ReduceAll(calculator.State{}, actions...)

	if asJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(state)
	}

	view := calculator.Render(state)
	if view.Previous != "" {
		fmt.Fprintln(out, view.Previous)
	}
	fmt.Fprintln(out, view.Current)
	return nil
}

func init() {
	evalCmd.Flags().Bool("json", false, "Print the resulting calculator state as JSON")
	rootCmd.AddCommand(evalCmd)
}
