package calculator

// Kind names an action on the wire.
type Kind string

const (
	KindAddDigit        Kind = "AddDigit"
	KindChooseOperation Kind = "ChooseOperation"
	KindClear           Kind = "Clear"
	KindDeleteDigit     Kind = "DeleteDigit"
	KindEvaluate        Kind = "Evaluate"
)

// Action is the closed set of inputs accepted by Reduce. Only the types in
// this file implement it.
type Action interface {
	Kind() Kind
	action()
}

// AddDigit appends a digit or decimal point to the current operand.
type AddDigit struct {
	Digit string
}

// ChooseOperation selects the pending operation, chaining left to right.
type ChooseOperation struct {
	Operation Operation
}

// Clear resets to the empty state.
type Clear struct{}

// DeleteDigit is backspace.
type DeleteDigit struct{}

// Evaluate applies the pending operation.
type Evaluate struct{}

// Unknown carries a kind decoded from the wire that this version does not
// recognise. Reduce treats it as a no-op.
type Unknown struct {
	Name Kind
}

func (AddDigit) Kind() Kind        { return KindAddDigit }
func (ChooseOperation) Kind() Kind { return KindChooseOperation }
func (Clear) Kind() Kind           { return KindClear }
func (DeleteDigit) Kind() Kind     { return KindDeleteDigit }
func (Evaluate) Kind() Kind        { return KindEvaluate }
func (u Unknown) Kind() Kind       { return u.Name }

func (AddDigit) action()        {}
func (ChooseOperation) action() {}
func (Clear) action()           {}
func (DeleteDigit) action()     {}
func (Evaluate) action()        {}
func (Unknown) action()         {}
