package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/pkg/adapters/memory"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNope = errors.New("nope")

func newUnit(t *testing.T, metrics *observability.Metrics) *modux.Unit {
	t.Helper()
	unit, err := modux.New(modux.Config{
		Name:         "timer",
		InitialState: 0,
		Actions: []modux.ActionSpec{
			modux.Simple("increase"),
			modux.Business("greet", func(context.Context, *modux.API, ...any) (any, error) { return "hi", nil }),
			modux.Business("fail", func(context.Context, *modux.API, ...any) (any, error) { return nil, errNope }),
		},
	}, modux.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)
	return unit
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	unit := newUnit(t, metrics)
	store := memory.NewStore(modux.Combine(unit),
		memory.WithMiddleware(memory.Thunk(), metrics.Middleware()))
	modux.Init(store, unit)

	ctx := context.Background()
	api := unit.API()
	_, err = api.Call(ctx, "increase")
	require.NoError(t, err)
	_, err = api.Call(ctx, "increase")
	require.NoError(t, err)
	_, err = api.Call(ctx, "greet")
	require.NoError(t, err)
	_, err = api.Call(ctx, "fail")
	require.ErrorIs(t, err, errNope)
	_, err = store.Dispatch(ctx, "garbage")
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"modux_actions_dispatched_total",
		"modux_dispatch_errors_total",
		"modux_business_actions_total",
		"modux_business_action_duration_seconds",
	}, names)

	n, err := testutil.GatherAndCount(reg, "modux_business_action_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(reg, "modux_actions_dispatched_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n, "INCREASE, GREET_STARTED, GREET_SUCCESS, FAIL_STARTED, FAIL_FAILED")

	n, err = testutil.GatherAndCount(reg, "modux_business_actions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one success and one failure series")
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug)

	store := memory.NewStore(
		func(state any, _ domain.Action) any { return state },
		memory.WithMiddleware(observability.LoggingMiddleware(logger), memory.Thunk()),
	)
	ctx := context.Background()
	_, err := store.Dispatch(ctx, domain.NewAction("TIMER_INCREASE"))
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, 7)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=dispatched")
	assert.Contains(t, out, "msg_type=TIMER_INCREASE")
	assert.Contains(t, out, `msg="dispatch failed"`)
	assert.Contains(t, out, "msg_type=int")
	assert.Contains(t, out, "err=")
}
