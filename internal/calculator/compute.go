package calculator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the longest leading number in an operand. Trailing
// garbage is ignored, so "5." parses as 5 and "12abc" as 12.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// Compute applies op to two numeric-string operands using float64 arithmetic
// and returns the canonical string form of the result. It returns "" when
// either operand is not a number or op is not a supported symbol.
//
// Arithmetic is plain float64: 0.1 + 0.2 yields
// "0.30000000000000004", and division by zero yields "Infinity" or "NaN".
func Compute(previous, current string, op Operation) string {
	prev, ok := ParseOperand(previous)
	if !ok {
		return ""
	}
	cur, ok := ParseOperand(current)
	if !ok {
		return ""
	}

	var result float64
	switch op {
	case OpAdd:
		result = prev + cur
	case OpSubtract:
		result = prev - cur
	case OpMultiply:
		result = prev * cur
	case OpDivide:
		result = prev / cur
	default:
		return ""
	}

	return FormatNumber(result)
}

// ParseOperand parses the leading number of s. The second result is false
// when s has no numeric prefix or the prefix is NaN.
func ParseOperand(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return 0, false
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !math.IsInf(v, 0) {
		// Overflow still yields ±Inf; anything else is unparseable.
		return 0, false
	}
	return v, true
}

// FormatNumber renders v with the shortest digits that round-trip. Plain
// decimal notation is used for 1e-6 <= |v| < 1e21 and exponent notation
// outside that range.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
