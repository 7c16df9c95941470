package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Previous  string `json:"previous"`
	Current   string `json:"current"`
	Operation string `json:"operation"` // "+", "-", "*", "÷" or "/"
}

// EvaluateResponse carries the raw result and its display form.
type EvaluateResponse struct {
	Operation string `json:"operation"`
	Result    string `json:"result"`
	Display   string `json:"display"`
}

// ActionsRequest is the JSON body for POST /calculator/replay and
// POST /calculator/sessions/{id}/actions. A bare envelope is accepted in
// place of the list.
type ActionsRequest struct {
	Actions []Envelope `json:"actions"`
}

// StateResponse is returned by every endpoint that yields a calculator state.
type StateResponse struct {
	ID      string `json:"id,omitempty"`
	State   State  `json:"state"`
	Display View   `json:"display"`
}

// ListResponse is the JSON response for GET /calculator/sessions.
type ListResponse struct {
	Sessions []string `json:"sessions"`
}

func newStateResponse(id string, s State) StateResponse {
	return StateResponse{ID: id, State: s, Display: Render(s)}
}

// decodeActions reads either {"actions":[...]} or a single envelope.
func decodeActions(r io.Reader) ([]Action, error) {
	var body struct {
		ActionsRequest
		Envelope
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}

	envelopes := body.Actions
	if body.Kind != "" {
		envelopes = append([]Envelope{body.Envelope}, envelopes...)
	}
	if len(envelopes) == 0 {
		return nil, errors.New("no actions provided")
	}
	return DecodeActions(envelopes)
}
