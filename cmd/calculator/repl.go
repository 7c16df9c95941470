package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/terminal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultWidth = 24

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Drive a calculator interactively, one line of keys at a time",
	Long: `Reads lines of button presses from standard input and redraws the readout
after each line. Keys may be separated by spaces or typed compactly
("12+3="). Type "quit" or "exit", or send EOF, to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if interactive && !cmd.Flags().Changed("width") {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 4 {
				width = min(w-4, 40)
			}
		}
		return runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), width, interactive)
	},
}

// runREPL reads key lines from in until EOF or a quit word, redrawing the
// readout after each line. Lines with an unknown key are reported and leave
// the state untouched.
func runREPL(in io.Reader, out io.Writer, width int, prompt bool) error {
	tty := terminal.NewTerminal(out, width)
	scanner := bufio.NewScanner(in)
	state := calculator.State{}

	tty.Print(calculator.Render(state))
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		actions, err := calculator.ParseKeys(line)
		if err != nil {
			observability.Logger.Debug("rejected input", zap.String("line", line), zap.Error(err))
			tty.Error(err.Error())
			continue
		}

		state = calculator.ReduceAll(state, actions...)
		tty.Print(calculator.Render(state))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func init() {
	replCmd.Flags().Int("width", defaultWidth, "Readout width in characters")
	rootCmd.AddCommand(replCmd)
}
