package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned by ParseKey for labels that match no button.
var ErrInvalidKey = errors.New("invalid key")

// ParseKey maps a calculator button label to its action.
func ParseKey(key string) (Action, error) {
	switch k := strings.ToUpper(strings.TrimSpace(key)); k {
	case "=", "ENTER":
		return Evaluate{}, nil
	case "C", "AC", "CLEAR":
		return Clear{}, nil
	case "DEL", "<", "BACKSPACE":
		return DeleteDigit{}, nil
	case "X", "×":
		return ChooseOperation{Operation: OpMultiply}, nil
	default:
		if validDigit(k) {
			return AddDigit{Digit: k}, nil
		}
		if op, ok := ParseOperation(k); ok {
			return ChooseOperation{Operation: op}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
}

// ParseKeys splits a line of input into button presses. Whitespace separates
// words; inside a word every digit, point and operator is its own key, so
// "12+3=" and "1 2 + 3 =" are equivalent. Word labels such as AC and DEL must
// stand alone.
func ParseKeys(line string) ([]Action, error) {
	var actions []Action
	for _, word := range strings.Fields(line) {
		if a, err := ParseKey(word); err == nil {
			actions = append(actions, a)
			continue
		}
		for _, r := range word {
			a, err := ParseKey(string(r))
			if err != nil {
				return nil, fmt.Errorf("%w: %q in %q", ErrInvalidKey, string(r), word)
			}
			actions = append(actions, a)
		}
	}
	return actions, nil
}
