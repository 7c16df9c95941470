package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when an action envelope cannot be decoded into
// a well-formed action.
var ErrInvalidAction = errors.New("invalid action")

// Envelope is the wire form of an action: {"kind": ..., "payload": ...}.
type Envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type digitPayload struct {
	Digit string `json:"digit"`
}

type operationPayload struct {
	Operation string `json:"operation"`
}

// Decode converts an envelope into an Action. Kinds this version does not
// know decode to Unknown, which Reduce ignores.
func (e Envelope) Decode() (Action, error) {
	switch e.Kind {
	case KindAddDigit:
		var p digitPayload
		if err := unmarshalPayload(e.Payload, &p); err != nil {
			return nil, err
		}
		if !validDigit(p.Digit) {
			return nil, fmt.Errorf("%w: digit %q", ErrInvalidAction, p.Digit)
		}
		return AddDigit{Digit: p.Digit}, nil

	case KindChooseOperation:
		var p operationPayload
		if err := unmarshalPayload(e.Payload, &p); err != nil {
			return nil, err
		}
		op, ok := ParseOperation(p.Operation)
		if !ok {
			return nil, fmt.Errorf("%w: operation %q", ErrInvalidAction, p.Operation)
		}
		return ChooseOperation{Operation: op}, nil

	case KindClear:
		return Clear{}, nil
	case KindDeleteDigit:
		return DeleteDigit{}, nil
	case KindEvaluate:
		return Evaluate{}, nil
	case "":
		return nil, fmt.Errorf("%w: missing kind", ErrInvalidAction)
	default:
		return Unknown{Name: e.Kind}, nil
	}
}

// DecodeAction parses a JSON envelope.
func DecodeAction(data []byte) (Action, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return e.Decode()
}

// DecodeActions decodes a batch of envelopes, stopping at the first failure.
func DecodeActions(envelopes []Envelope) ([]Action, error) {
	actions := make([]Action, 0, len(envelopes))
	for i, e := range envelopes {
		a, err := e.Decode()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// EncodeAction is the inverse of Decode.
func EncodeAction(a Action) (Envelope, error) {
	var payload any
	switch a := a.(type) {
	case AddDigit:
		payload = digitPayload{Digit: a.Digit}
	case ChooseOperation:
		payload = operationPayload{Operation: string(a.Operation)}
	}

	e := Envelope{Kind: a.Kind()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal %s payload: %w", a.Kind(), err)
		}
		e.Payload = raw
	}
	return e, nil
}

// ParseOperation accepts the four symbols plus "/" as an ASCII spelling of ÷.
func ParseOperation(s string) (Operation, bool) {
	if s == "/" {
		return OpDivide, true
	}
	op := Operation(s)
	return op, op.Valid()
}

func validDigit(d string) bool {
	return len(d) == 1 && (d == "." || (d[0] >= '0' && d[0] <= '9'))
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidAction)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return nil
}
