package modux_test

import (
	"testing"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(label string) domain.Reducer {
	return func(state any, _ domain.Action) any {
		return label
	}
}

func newRouterUnit(t *testing.T, reducers map[string]domain.Reducer) *modux.Unit {
	t.Helper()
	unit, err := modux.New(modux.Config{
		Name:         "timer",
		InitialState: "initial",
		Actions:      modux.Actions("increase"),
		Reducers:     reducers,
	})
	require.NoError(t, err)
	return unit
}

func TestReduce_NilStateUsesInitialState(t *testing.T) {
	unit := newRouterUnit(t, nil)
	assert.Equal(t, "initial", unit.Reduce(nil, domain.Action{Type: domain.InitActionType}))
}

func TestReduce_NoMatchingReducerKeepsState(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{"decrease": tag("decrease")})
	assert.Equal(t, "prev", unit.Reduce("prev", domain.Action{Type: "TIMER_INCREASE"}))
}

func TestReduce_ExactMatch(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{"increase": tag("increase")})
	assert.Equal(t, "increase", unit.Reduce("prev", domain.Action{Type: "TIMER_INCREASE"}))
}

func TestReduce_SuccessFallsBackToBaseName(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{"asyncAction": tag("base")})
	assert.Equal(t, "base", unit.Reduce("prev", domain.Action{Type: "TIMER_ASYNC_ACTION_SUCCESS"}))
}

func TestReduce_ExactSuccessWinsOverFallback(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{
		"asyncAction":        tag("base"),
		"asyncActionSuccess": tag("exact"),
	})
	assert.Equal(t, "exact", unit.Reduce("prev", domain.Action{Type: "TIMER_ASYNC_ACTION_SUCCESS"}))
}

func TestReduce_StartedAndFailedHaveNoFallback(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{
		"asyncAction":       tag("base"),
		"asyncActionFailed": tag("failed"),
	})
	assert.Equal(t, "prev", unit.Reduce("prev", domain.Action{Type: "TIMER_ASYNC_ACTION_STARTED"}))
	assert.Equal(t, "failed", unit.Reduce("prev", domain.Action{Type: "TIMER_ASYNC_ACTION_FAILED"}))
}

func TestReduce_ForeignPrefixIgnored(t *testing.T) {
	// "TIMERS_INCREASE" shares characters with the prefix but belongs to another unit.
	unit := newRouterUnit(t, map[string]domain.Reducer{"increase": tag("increase"), "sIncrease": tag("leak")})
	assert.Equal(t, "prev", unit.Reduce("prev", domain.Action{Type: "APP_INCREASE"}))
	assert.Equal(t, "prev", unit.Reduce("prev", domain.Action{Type: "TIMERS_INCREASE"}))
}

func TestReduce_ReducerReceivesAction(t *testing.T) {
	var got domain.Action
	unit := newRouterUnit(t, map[string]domain.Reducer{
		"increase": func(state any, action domain.Action) any {
			got = action
			return state
		},
	})
	act := domain.NewAction("TIMER_INCREASE", 5)
	unit.Reducer()("prev", act)
	assert.Equal(t, act, got)
}

func TestRoute(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{
		"increase":     tag("increase"),
		"asyncAction":  tag("asyncAction"),
		"resetStarted": tag("resetStarted"),
	})

	tests := []struct {
		actionType string
		want       string
		ok         bool
	}{
		{"TIMER_INCREASE", "increase", true},
		{"TIMER_ASYNC_ACTION_SUCCESS", "asyncAction", true},
		{"TIMER_RESET_STARTED", "resetStarted", true},
		{"TIMER_RESET_FAILED", "", false},
		{"CLOCK_INCREASE", "", false},
		{"TIMER_", "", false},
	}
	for _, tt := range tests {
		got, ok := unit.Route(tt.actionType)
		assert.Equal(t, tt.ok, ok, tt.actionType)
		assert.Equal(t, tt.want, got, tt.actionType)
	}
}

func TestReduce_NilResultResetsToInitialState(t *testing.T) {
	unit := newRouterUnit(t, map[string]domain.Reducer{
		"increase": func(any, domain.Action) any { return nil },
	})

	state := unit.Reduce("prev", domain.Action{Type: "TIMER_INCREASE"})
	assert.Nil(t, state)
	assert.Equal(t, "initial", unit.Reduce(state, domain.Action{Type: "TIMER_DECREASE"}))
}
