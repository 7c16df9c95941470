// Package sessiontest holds the behavioural contract every session.Store
// implementation must satisfy.
package sessiontest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract exercises store through Save, Load, Delete and List.
func RunStoreContract(t *testing.T, store session.Store) {
	t.Helper()
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		state := calculator.ReduceAll(calculator.State{},
			calculator.AddDigit{Digit: "1"},
			calculator.AddDigit{Digit: "2"},
			calculator.ChooseOperation{Operation: calculator.OpDivide},
			calculator.AddDigit{Digit: "."},
		)

		require.NoError(t, store.Save(ctx, id, state))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.True(t, state.Equal(loaded), "loaded %+v, saved %+v", loaded, state)
		assert.Equal(t, calculator.OpDivide, loaded.Operation)
	})

	t.Run("Empty operand survives", func(t *testing.T) {
		id := prefix + "-empty"
		empty := ""
		state := calculator.State{CurrentOperand: &empty, Overwrite: true}

		require.NoError(t, store.Save(ctx, id, state))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		cur, ok := loaded.Current()
		assert.True(t, ok, "empty operand should stay present")
		assert.Equal(t, "", cur)
		assert.True(t, loaded.Overwrite)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, prefix+"-missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, id, calculator.State{}))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids := []string{prefix + "-list-a", prefix + "-list-b"}
		for _, id := range ids {
			require.NoError(t, store.Save(ctx, id, calculator.State{}))
		}

		listed, err := store.List(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Contains(t, listed, id, fmt.Sprintf("List should include %s", id))
		}
	})
}
