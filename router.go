package modux

import (
	"fmt"

	"github.com/aretw0/modux/internal/naming"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Reduce routes action to the reducer named after its type.
//
// A nil state is replaced by the initial state, so a reducer that returns nil
// resets the slice on the next action. The unit prefix is stripped and the rest
// lowerCamelCased ("TIMER_ASYNC_ACTION_SUCCESS" -> "asyncActionSuccess").
// When no reducer has that name and it ends in "Success", the trimmed name is tried.
// Types without the unit prefix, and unmatched names, leave state unchanged.
func (u *Unit) Reduce(state any, action domain.Action) any {
	if state == nil {
		state = u.initialState
	}
	key, ok := u.Route(action.Type)
	if !ok {
		return state
	}
	return u.reducers[key](state, action)
}

// Route reports the key of the reducer that handles actionType.
func (u *Unit) Route(actionType string) (string, bool) {
	name, ok := naming.ReducerName(u.prefix, actionType)
	if !ok {
		return "", false
	}
	if _, ok := u.reducers[name]; ok {
		return name, true
	}
	if base, ok := naming.TrimSuccess(name); ok {
		if _, ok := u.reducers[base]; ok {
			return base, true
		}
	}
	return "", false
}

// Reducer returns Reduce as a domain.Reducer.
func (u *Unit) Reducer() domain.Reducer {
	return u.Reduce
}

// ReducerOf adapts a typed reducer. A nil state becomes the zero S; a state of
// another representation (e.g. a map loaded from a manifest) is decoded into S.
// It panics when the state cannot be decoded.
func ReducerOf[S any](fn func(S, domain.Action) S) domain.Reducer {
	return func(state any, action domain.Action) any {
		s, err := decodeState[S](state)
		if err != nil {
			panic(fmt.Errorf("modux: reducer state: %w", err))
		}
		return fn(s, action)
	}
}

// StateAs returns the unit's slice of the store state as S.
func StateAs[S any](api *API) (S, error) {
	var zero S
	if _, err := api.unit.store(); err != nil {
		return zero, err
	}
	slice, ok := domain.Slice(api.GetState(), api.unit.name)
	if !ok {
		return zero, fmt.Errorf("no state slice %q in store", api.unit.name)
	}
	return decodeState[S](slice)
}

// PayloadAs decodes an action payload into P.
func PayloadAs[P any](action domain.Action) (P, error) {
	return decodeState[P](action.Payload)
}

func decodeState[S any](state any) (S, error) {
	var s S
	if state == nil {
		return s, nil
	}
	if typed, ok := state.(S); ok {
		return typed, nil
	}
	if err := mapstructure.Decode(state, &s); err != nil {
		return s, fmt.Errorf("decode %T into %T: %w", state, s, err)
	}
	return s, nil
}
