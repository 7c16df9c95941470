// Package session keeps one calculator state per session ID and serializes
// the actions applied to it.
package session

import (
	"context"

	"go-chi-calculator/internal/calculator"
)

// ErrSessionNotFound is returned when a session ID has no stored state.
var ErrSessionNotFound = calculator.ErrSessionNotFound

// Store persists calculator states by session ID.
type Store interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state calculator.State) error

	// Load retrieves the state for a given session ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (calculator.State, error)

	// Delete removes the state for a given session ID. Deleting a missing
	// session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
