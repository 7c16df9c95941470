package calculator

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// View is the two-line calculator readout shown to people.
type View struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// Render builds the readout for s: grouped integer digits, fractional parts
// kept exactly as typed. The previous line carries the pending
// operation symbol after the operand.
func Render(s State) View {
	var v View
	if prev, ok := s.Previous(); ok {
		v.Previous = FormatOperand(prev)
	}
	if s.Operation != "" {
		v.Previous = strings.TrimSpace(v.Previous + " " + string(s.Operation))
	}
	if cur, ok := s.Current(); ok {
		v.Current = FormatOperand(cur)
	}
	return v
}

// FormatOperand groups the integer part of an operand with commas and keeps
// any fractional part verbatim, so trailing zeros and a bare trailing point
// survive while the user is typing ("1234.50" -> "1,234.50").
func FormatOperand(operand string) string {
	integer, fraction, hasPoint := strings.Cut(operand, ".")
	formatted := formatInteger(integer)
	if !hasPoint {
		return formatted
	}
	return formatted + "." + fraction
}

func formatInteger(s string) string {
	if s == "" || s == "-" {
		return "0"
	}
	if plainInteger.MatchString(s) {
		return groupDigits(s)
	}

	v, ok := ParseOperand(s)
	switch {
	case !ok:
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}

	v = math.Trunc(v)
	if v == 0 {
		return "0"
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// plainInteger matches what users type and what fixed-notation results look
// like. Those are grouped as text so every typed digit survives.
var plainInteger = regexp.MustCompile(`^-?\d+$`)

// groupDigits inserts a comma every three digits from the right, dropping
// leading zeros. Negative zero renders as "0".
func groupDigits(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
