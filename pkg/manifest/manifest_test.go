package manifest

import (
	"context"
	"testing"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/pkg/adapters/memory"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTimer(t *testing.T) (*modux.Unit, *modux.Unit, *memory.Store) {
	t.Helper()
	f, err := Load("testdata/timer.yaml")
	require.NoError(t, err)

	units, err := f.Build()
	require.NoError(t, err)
	require.Len(t, units, 2)

	store := memory.NewStore(modux.Combine(units...), memory.WithMiddleware(memory.Thunk()))
	modux.Init(store, units...)
	return units[0], units[1], store
}

func TestLoad_Timer(t *testing.T) {
	timer, flag, _ := loadTimer(t)
	ctx := context.Background()
	api := timer.API()

	for _, call := range []struct {
		name string
		args []any
	}{
		{"increase", nil},
		{"increase", []any{5}},
		{"decrease", nil},
		{"set_msg", []any{"hello"}},
		{"toggle", nil},
		{"tag", []any{"a"}},
		{"tag", []any{"b"}},
		{"configure", []any{map[string]any{"limit": 10}}},
	} {
		_, err := api.Call(ctx, call.name, call.args...)
		require.NoError(t, err, call.name)
	}

	assert.Equal(t, map[string]any{
		"count":   5,
		"msg":     "hello",
		"running": true,
		"tags":    []any{"a", "b"},
		"limit":   10,
	}, api.GetMyState())

	_, err := api.Call(ctx, "reset")
	require.NoError(t, err)
	assert.Equal(t, timer.InitialState(), api.GetMyState())

	_, err = flag.API().Call(ctx, "flip")
	require.NoError(t, err)
	assert.Equal(t, true, flag.API().GetMyState())
}

func TestLoad_FailedOpKeepsState(t *testing.T) {
	timer, _, _ := loadTimer(t)
	ctx := context.Background()

	_, err := timer.API().Call(ctx, "increase", "not a number")
	require.NoError(t, err)
	state := timer.API().GetMyState().(map[string]any)
	assert.Equal(t, 0, state["count"])
}

func TestParse_JSON(t *testing.T) {
	f, err := Parse([]byte(`{"units":[{"name":"counter","initialState":0,"actions":["inc"],"reducers":{"inc":{"op":"add","by":"2"}}}]}`), ".json")
	require.NoError(t, err)

	units, err := f.Build()
	require.NoError(t, err)
	counter := units[0]

	// JSON numbers decode as float64, so arithmetic stays in floats.
	assert.Equal(t, 2.0, counter.Reduce(nil, domain.Action{Type: "COUNTER_INC"}))

	names, ok := f.ActionNames("counter")
	assert.True(t, ok)
	assert.Equal(t, []string{"inc"}, names)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 5)

	var keys []string
	for _, e := range errs {
		var ve *ValidationError
		require.ErrorAs(t, e, &ve)
		keys = append(keys, ve.Key)
	}
	assert.Equal(t, []string{
		"units[0].name",
		"units[0].actions[1]",
		"units[1].reducers.broken",
		"units[1].reducers.decrease",
		"units[1].reducers.increase",
	}, keys)
	assert.Contains(t, err.Error(), "5 validation errors")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
	assert.Nil(t, ValidationErrors(err))
}

func TestUnits_BuildError(t *testing.T) {
	// set_msg and setMsg derive the same type.
	f := &File{Units: []UnitSpec{{Name: "timer", Actions: []string{"set_msg", "setMsg"}}}}
	require.NoError(t, f.Validate())

	_, err := f.Build()
	assert.ErrorIs(t, err, domain.ErrDuplicateAction)
}

func TestFile_BuildKeepsManifestOrder(t *testing.T) {
	f, err := Parse([]byte("units:\n  - name: b\n  - name: a\n"), ".yaml")
	require.NoError(t, err)
	require.Len(t, f.Units, 2)

	units, err := f.Build()
	require.NoError(t, err)
	require.Len(t, units, len(f.Units))
	for i, u := range units {
		assert.Equal(t, f.Units[i].Name, u.Name())
	}
}
