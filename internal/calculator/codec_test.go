package calculator

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{`{"kind":"AddDigit","payload":{"digit":"7"}}`, AddDigit{Digit: "7"}},
		{`{"kind":"AddDigit","payload":{"digit":"."}}`, AddDigit{Digit: "."}},
		{`{"kind":"ChooseOperation","payload":{"operation":"÷"}}`, ChooseOperation{Operation: OpDivide}},
		{`{"kind":"ChooseOperation","payload":{"operation":"/"}}`, ChooseOperation{Operation: OpDivide}},
		{`{"kind":"Clear"}`, Clear{}},
		{`{"kind":"DeleteDigit"}`, DeleteDigit{}},
		{`{"kind":"Evaluate","payload":{"ignored":true}}`, Evaluate{}},
		{`{"kind":"Memory"}`, Unknown{Name: "Memory"}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := DecodeAction([]byte(tc.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestDecodeActionRejectsMalformed(t *testing.T) {
	inputs := []string{
		`not json`,
		`{}`,
		`{"kind":"AddDigit"}`,
		`{"kind":"AddDigit","payload":{"digit":"12"}}`,
		`{"kind":"AddDigit","payload":{"digit":"a"}}`,
		`{"kind":"ChooseOperation","payload":{"operation":"%"}}`,
		`{"kind":"ChooseOperation","payload":"+"}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeAction([]byte(in))
			if !errors.Is(err, ErrInvalidAction) {
				t.Fatalf("expected ErrInvalidAction, got %v", err)
			}
		})
	}
}

func TestEncodeActionRoundTrip(t *testing.T) {
	actions := []Action{
		AddDigit{Digit: "3"},
		ChooseOperation{Operation: OpMultiply},
		Clear{},
		DeleteDigit{},
		Evaluate{},
	}

	for _, a := range actions {
		e, err := EncodeAction(a)
		if err != nil {
			t.Fatalf("encode %T: %v", a, err)
		}
		raw, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal %T: %v", a, err)
		}
		back, err := DecodeAction(raw)
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if back != a {
			t.Fatalf("expected %#v, got %#v", a, back)
		}
	}
}

func TestDecodeActionsReportsIndex(t *testing.T) {
	_, err := DecodeActions([]Envelope{
		{Kind: KindClear},
		{Kind: KindAddDigit, Payload: json.RawMessage(`{"digit":"x"}`)},
	})
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if got := err.Error(); got[:8] != "action 1" {
		t.Fatalf("expected error to name action 1, got %q", got)
	}
}

func TestStateJSON(t *testing.T) {
	raw, err := json.Marshal(State{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected {}, got %s", raw)
	}

	s := ReduceAll(State{}, AddDigit{Digit: "5"}, ChooseOperation{Operation: OpAdd}, AddDigit{Digit: "3"})
	raw, err = json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"currentOperand":"3","previousOperand":"5","operation":"+"}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}
