// Package terminal draws the calculator readout on a terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"go-chi-calculator/internal/calculator"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Terminal writes readouts to a terminal, coloring them when the output
// supports it.
type Terminal struct {
	out     *termenv.Output
	width   int
	profile termenv.Profile
}

// NewTerminal wraps w. Width is the readout width in cells; values below 16
// are raised to 16.
func NewTerminal(w io.Writer, width int) *Terminal {
	if width < 16 {
		width = 16
	}
	out := termenv.NewOutput(w)
	return &Terminal{out: out, width: width, profile: out.Profile}
}

// Print writes the two readout lines right-aligned inside a frame.
func (t *Terminal) Print(v calculator.View) {
	border := t.out.String("+" + strings.Repeat("-", t.width+2) + "+").Foreground(t.profile.Color("#64748b"))
	prev := t.out.String(pad(v.Previous, t.width)).Foreground(t.profile.Color("#94a3b8"))
	cur := t.out.String(pad(v.Current, t.width)).Foreground(t.profile.Color("#f8fafc")).Bold()

	fmt.Fprintln(t.out, border)
	fmt.Fprintf(t.out, "| %s |\n", prev)
	fmt.Fprintf(t.out, "| %s |\n", cur)
	fmt.Fprintln(t.out, border)
}

// Error writes a highlighted one-line message.
func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.out, t.out.String(msg).Foreground(t.profile.Color("#f87171")))
}

// pad right-aligns s in width terminal cells.
func pad(s string, width int) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
