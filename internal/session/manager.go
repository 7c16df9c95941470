package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-chi-calculator/internal/calculator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lockEntry is a per-session mutex with a reference count so idle sessions
// do not keep an entry alive.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager applies actions to stored sessions one at a time per session.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*lockEntry
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: zap.NewNop(),
		locks:  make(map[string]*lockEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock runs fn while holding the session's lock.
func (m *Manager) withLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Create starts a new session with the empty state and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, calculator.State, error) {
	id := uuid.New().String()
	if err := m.store.Save(ctx, id, calculator.State{}); err != nil {
		return "", calculator.State{}, fmt.Errorf("create session: %w", err)
	}
	m.logger.Debug("session created", zap.String("session_id", id))
	return id, calculator.State{}, nil
}

// Get returns the current state of a session.
func (m *Manager) Get(ctx context.Context, sessionID string) (calculator.State, error) {
	var state calculator.State
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Dispatch applies actions in order to the stored state and saves the result.
// A missing session fails with ErrSessionNotFound.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, actions ...calculator.Action) (calculator.State, error) {
	return m.dispatch(ctx, sessionID, false, actions)
}

// DispatchOrStart behaves like Dispatch but starts from the empty state when
// the session does not exist yet.
func (m *Manager) DispatchOrStart(ctx context.Context, sessionID string, actions ...calculator.Action) (calculator.State, error) {
	return m.dispatch(ctx, sessionID, true, actions)
}

func (m *Manager) dispatch(ctx context.Context, sessionID string, start bool, actions []calculator.Action) (calculator.State, error) {
	var next calculator.State
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := m.store.Load(ctx, sessionID)
		if err != nil {
			if !start || !errors.Is(err, ErrSessionNotFound) {
				return err
			}
			state = calculator.State{}
		}

		next = calculator.ReduceAll(state, actions...)
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return calculator.State{}, err
	}

	m.logger.Debug("actions applied",
		zap.String("session_id", sessionID),
		zap.Int("actions", len(actions)),
	)
	return next, nil
}

// Reset puts an existing session back to the empty state.
func (m *Manager) Reset(ctx context.Context, sessionID string) (calculator.State, error) {
	return m.Dispatch(ctx, sessionID, calculator.Clear{})
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.withLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List returns the IDs of all sessions.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}
