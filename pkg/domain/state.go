package domain

// Reducer computes the next state from the previous state and an action.
// A nil state means "not initialized yet".
type Reducer func(state any, action Action) any

// InitActionType is dispatched once by a store on construction so every
// reducer gets the chance to install its initial state.
const InitActionType = "@@modux/INIT"

// Slice returns the value stored under key when state is a combined state map.
func Slice(state any, key string) (any, bool) {
	m, ok := state.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}
