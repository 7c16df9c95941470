package calculator

// Operation is one of the four arithmetic symbols. The zero value means no
// operation has been chosen.
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "÷"
)

// Valid reports whether op is one of the four supported symbols.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// State is an immutable calculator snapshot. Operands are pointers so that an
// absent operand stays distinct from an empty one: a failed evaluation stores
// "" as the current operand.
type State struct {
	CurrentOperand  *string   `json:"currentOperand,omitempty"`
	PreviousOperand *string   `json:"previousOperand,omitempty"`
	Operation       Operation `json:"operation,omitempty"`
	Overwrite       bool      `json:"overwrite,omitempty"`
}

// Current returns the current operand and whether it is present.
func (s State) Current() (string, bool) {
	if s.CurrentOperand == nil {
		return "", false
	}
	return *s.CurrentOperand, true
}

// Previous returns the previous operand and whether it is present.
func (s State) Previous() (string, bool) {
	if s.PreviousOperand == nil {
		return "", false
	}
	return *s.PreviousOperand, true
}

// IsEmpty reports whether s is the initial {} state.
func (s State) IsEmpty() bool {
	return s.CurrentOperand == nil && s.PreviousOperand == nil && s.Operation == "" && !s.Overwrite
}

// Equal compares operand values rather than pointer identity.
func (s State) Equal(o State) bool {
	return equalOperand(s.CurrentOperand, o.CurrentOperand) &&
		equalOperand(s.PreviousOperand, o.PreviousOperand) &&
		s.Operation == o.Operation &&
		s.Overwrite == o.Overwrite
}

func equalOperand(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// operand returns a pointer to a copy of v. Operands a transition moves or
// rewrites are always copied; operands it leaves alone keep the input's
// pointer, so callers must not write through State pointers.
func operand(v string) *string {
	return &v
}
