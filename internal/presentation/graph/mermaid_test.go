package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/presentation/graph"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *modux.API, ...any) (any, error) { return nil, nil }

func keep(state any, _ domain.Action) any { return state }

func newUnit(t *testing.T) *modux.Unit {
	t.Helper()
	u, err := modux.New(modux.Config{
		Name: "timer",
		Actions: []modux.ActionSpec{
			modux.Simple("increase"),
			modux.Business("save", noop),
			modux.Async("fetch", noop),
		},
		Reducers: map[string]domain.Reducer{
			"increase":     keep,
			"save":         keep,
			"fetchStarted": keep,
		},
	})
	require.NoError(t, err)
	return u
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid([]*modux.Unit{newUnit(t)}, nil)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name: "Unit Shape",
			contains: []string{
				"subgraph timer_unit[\"timer\"]",
				"timer((\"timer\"))",
			},
		},
		{
			name: "Simple Action",
			contains: []string{
				"timer --> TIMER_INCREASE[\"TIMER_INCREASE\"]",
				"TIMER_INCREASE --> timer_reducer_increase[/\"increase\"/]",
			},
		},
		{
			name: "Business Phases",
			contains: []string{
				"timer --> timer_save[[\"save\"]]",
				"timer_save --> TIMER_SAVE_STARTED[\"TIMER_SAVE_STARTED\"]",
				"timer_save --> TIMER_SAVE_FAILED[\"TIMER_SAVE_FAILED\"]",
				"TIMER_SAVE_SUCCESS --> timer_reducer_save[/\"save\"/]",
			},
		},
		{
			name: "Async Phases Are Dotted",
			contains: []string{
				"timer_fetch -.-> TIMER_FETCH_SUCCESS[\"TIMER_FETCH_SUCCESS\"]",
				"TIMER_FETCH_STARTED --> timer_reducer_fetchStarted[/\"fetchStarted\"/]",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}

	assert.NotContains(t, out, "TIMER_SAVE_FAILED -->", "unrouted types have no reducer edge")
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid([]*modux.Unit{newUnit(t)}, &graph.Overlay{
		DispatchedTypes: []string{"TIMER_INCREASE", "TIMER_INCREASE", "TIMER_SAVE_STARTED"},
		LastType:        "TIMER_SAVE_STARTED",
	})

	assert.Equal(t, 1, strings.Count(out, "class TIMER_INCREASE visited;"))
	assert.Contains(t, out, "class TIMER_SAVE_STARTED visited;")
	assert.Contains(t, out, "class TIMER_SAVE_STARTED current;")
}
