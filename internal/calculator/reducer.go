package calculator

import (
	"strings"
	"unicode/utf8"
)

// Reduce returns the state that follows s after applying a. It never mutates
// s and is total: every action, including Unknown, yields a defined state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddDigit:
		return addDigit(s, a.Digit)
	case ChooseOperation:
		return chooseOperation(s, a.Operation)
	case Clear:
		return State{}
	case DeleteDigit:
		return deleteDigit(s)
	case Evaluate:
		return evaluate(s)
	default:
		return s
	}
}

// ReduceAll folds actions over s from left to right.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func addDigit(s State, digit string) State {
	if s.Overwrite {
		s.CurrentOperand = operand(digit)
		s.Overwrite = false
		return s
	}

	current, _ := s.Current()
	if digit == "0" && s.CurrentOperand != nil && current == "0" {
		return s
	}
	if digit == "." && strings.Contains(current, ".") {
		return s
	}

	s.CurrentOperand = operand(current + digit)
	return s
}

func chooseOperation(s State, op Operation) State {
	if s.CurrentOperand == nil && s.PreviousOperand == nil {
		return s
	}

	if s.CurrentOperand == nil {
		s.Operation = op
		return s
	}

	if s.PreviousOperand == nil {
		s.PreviousOperand = operand(*s.CurrentOperand)
		s.CurrentOperand = nil
		s.Operation = op
		return s
	}

	s.PreviousOperand = operand(compute(s))
	s.CurrentOperand = nil
	s.Operation = op
	return s
}

func deleteDigit(s State) State {
	if s.Overwrite {
		s.Overwrite = false
		s.CurrentOperand = nil
		return s
	}

	current, ok := s.Current()
	if !ok {
		return s
	}

	if utf8.RuneCountInString(current) <= 1 {
		s.CurrentOperand = nil
		return s
	}

	_, size := utf8.DecodeLastRuneInString(current)
	s.CurrentOperand = operand(current[:len(current)-size])
	return s
}

func evaluate(s State) State {
	if s.Operation == "" || s.CurrentOperand == nil || s.PreviousOperand == nil {
		return s
	}

	return State{
		CurrentOperand: operand(compute(s)),
		Overwrite:      true,
	}
}

func compute(s State) string {
	previous, _ := s.Previous()
	current, _ := s.Current()
	return Compute(previous, current, s.Operation)
}
