package tests

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterReducer counts "INC" actions and records the last "SET" payload.
func counterReducer(state any, action domain.Action) any {
	s, _ := state.(map[string]any)
	if s == nil {
		s = map[string]any{"count": 0, "last": nil}
	}
	switch action.Type {
	case "INC":
		next := map[string]any{"count": s["count"].(int) + 1, "last": s["last"]}
		return next
	case "SET":
		return map[string]any{"count": s["count"], "last": action.Payload}
	}
	return s
}

// RunStoreContract is a reusable test suite that verifies if an implementation complies with ports.Store.
// The factory must return a store with thunk support.
func RunStoreContract(t *testing.T, factory ports.StoreFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("Initial state", func(t *testing.T) {
		store := factory(counterReducer)
		state, ok := store.GetState().(map[string]any)
		require.True(t, ok, "initial state should be installed on construction")
		assert.Equal(t, 0, state["count"])
	})

	t.Run("Dispatch action", func(t *testing.T) {
		store := factory(counterReducer)
		res, err := store.Dispatch(ctx, domain.NewAction("SET", "hello"))
		require.NoError(t, err)
		assert.Equal(t, domain.Action{Type: "SET", Payload: "hello"}, res)
		assert.Equal(t, "hello", store.GetState().(map[string]any)["last"])
	})

	t.Run("Dispatch thunk", func(t *testing.T) {
		store := factory(counterReducer)
		var thunk ports.Thunk = func(ctx context.Context, dispatch ports.DispatchFunc, getState func() any) (any, error) {
			if _, err := dispatch(ctx, domain.NewAction("INC")); err != nil {
				return nil, err
			}
			return getState().(map[string]any)["count"], nil
		}
		res, err := store.Dispatch(ctx, thunk)
		require.NoError(t, err)
		assert.Equal(t, 1, res, "thunk should observe its own dispatch")
	})

	t.Run("Unsupported message", func(t *testing.T) {
		store := factory(counterReducer)
		_, err := store.Dispatch(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrUnsupportedMessage)
	})

	t.Run("Concurrent dispatch", func(t *testing.T) {
		store := factory(counterReducer)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Dispatch(ctx, domain.NewAction("INC"))
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, store.GetState().(map[string]any)["count"])
	})
}
