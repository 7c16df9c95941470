package session_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"
	"go-chi-calculator/internal/session/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore widens the read-modify-write window so unserialized dispatches
// would lose updates.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Load(ctx context.Context, id string) (calculator.State, error) {
	time.Sleep(time.Millisecond)
	return s.Store.Load(ctx, id)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	id, state, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, state.IsEmpty())

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestManager_DispatchMissingSession(t *testing.T) {
	m := session.NewManager(memory.NewStore())

	_, err := m.Dispatch(context.Background(), "nope", calculator.Clear{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_DispatchOrStart(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	state, err := m.DispatchOrStart(ctx, "fresh", calculator.AddDigit{Digit: "4"})
	require.NoError(t, err)
	cur, _ := state.Current()
	assert.Equal(t, "4", cur)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)
}

func TestManager_DispatchEvaluates(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	state, err := m.Dispatch(ctx, id,
		calculator.AddDigit{Digit: "5"},
		calculator.ChooseOperation{Operation: calculator.OpAdd},
		calculator.AddDigit{Digit: "3"},
		calculator.Evaluate{},
	)
	require.NoError(t, err)

	cur, _ := state.Current()
	assert.Equal(t, "8", cur)
	assert.True(t, state.Overwrite)

	state, err = m.Reset(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
}

func TestManager_DispatchIsSerialized(t *testing.T) {
	m := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Dispatch(ctx, id, calculator.AddDigit{Digit: "1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := m.Get(ctx, id)
	require.NoError(t, err)
	cur, _ := state.Current()
	assert.Equal(t, strings.Repeat("1", n), cur)
}

func TestManager_Delete(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, id))

	_, err = m.Get(ctx, id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_CanceledContext(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.DispatchOrStart(ctx, "x", calculator.Clear{})
	assert.ErrorIs(t, err, context.Canceled)
}
