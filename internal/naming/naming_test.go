package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, "TIMER_", Prefix("timer"))
	assert.Equal(t, "MY_TIMER_", Prefix("myTimer"))
	assert.Equal(t, "APP_", Prefix("app"))
}

func TestActionType(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"increase", "TIMER_INCREASE"},
		{"asyncAction", "TIMER_ASYNC_ACTION"},
		{"myOtherAsyncAction", "TIMER_MY_OTHER_ASYNC_ACTION"},
		{"upperGreet", "TIMER_UPPER_GREET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ActionType("TIMER_", tt.name))
		})
	}
}

func TestPhaseTypes(t *testing.T) {
	started, success, failed := PhaseTypes("TIMER_GREET")
	assert.Equal(t, "TIMER_GREET_STARTED", started)
	assert.Equal(t, "TIMER_GREET_SUCCESS", success)
	assert.Equal(t, "TIMER_GREET_FAILED", failed)
}

func TestReducerName(t *testing.T) {
	name, ok := ReducerName("TIMER_", "TIMER_INCREASE")
	assert.True(t, ok)
	assert.Equal(t, "increase", name)

	name, ok = ReducerName("TIMER_", "TIMER_ASYNC_ACTION_SUCCESS")
	assert.True(t, ok)
	assert.Equal(t, "asyncActionSuccess", name)

	_, ok = ReducerName("TIMER_", "APP_INIT")
	assert.False(t, ok, "foreign prefix must not route")

	_, ok = ReducerName("TIMER_", "TIMER_")
	assert.False(t, ok)
}

func TestTrimSuccess(t *testing.T) {
	name, ok := TrimSuccess("asyncActionSuccess")
	assert.True(t, ok)
	assert.Equal(t, "asyncAction", name)

	_, ok = TrimSuccess("asyncActionFailed")
	assert.False(t, ok)

	_, ok = TrimSuccess("Success")
	assert.False(t, ok)
}

func TestRoundTrips(t *testing.T) {
	for _, name := range []string{"increase", "greet", "upperGreet", "asyncAction", "myOtherAsyncAction"} {
		assert.True(t, RoundTrips(name), name)
	}
	assert.False(t, RoundTrips("Increase"))
	assert.False(t, RoundTrips("set_msg"))
}
