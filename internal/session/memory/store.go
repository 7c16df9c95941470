// Package memory provides an in-process session store.
package memory

import (
	"context"
	"sort"
	"sync"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"
)

// Store implements session.Store in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]calculator.State
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]calculator.State)}
}

// Save stores a copy of state.
func (s *Store) Save(ctx context.Context, sessionID string, state calculator.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = clone(state)
	return nil
}

// Load returns a copy so callers cannot reach stored operands.
func (s *Store) Load(ctx context.Context, sessionID string) (calculator.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[sessionID]
	if !ok {
		return calculator.State{}, session.ErrSessionNotFound
	}
	return clone(state), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns session IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func clone(s calculator.State) calculator.State {
	if s.CurrentOperand != nil {
		v := *s.CurrentOperand
		s.CurrentOperand = &v
	}
	if s.PreviousOperand != nil {
		v := *s.PreviousOperand
		s.PreviousOperand = &v
	}
	return s
}
