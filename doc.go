/*
Package modux generates the boilerplate of a unidirectional state container from a declarative unit description.

A unit is described once, by name, initial state, an ordered list of actions and a set of reducers.
From that description modux derives action types, action creators, an auto-dispatching API and a
single routing reducer.

# Concept

Names drive everything. A unit called "timer" owns the type prefix "TIMER_"; its action
"asyncAction" becomes the type "TIMER_ASYNC_ACTION". The router strips the prefix again and looks
up the lowerCamelCase remainder among the reducers, so a reducer keyed "increase" receives every
"TIMER_INCREASE" action.

Actions come in three kinds, fixed at declaration time:

  - Simple: dispatched verbatim, the first call argument is the payload.
  - Business: a synchronous body wrapped in _STARTED and _SUCCESS or _FAILED messages.
  - Async: the same wrapping around a body run on its own goroutine; the caller gets a *Future.

Business bodies receive the unit's *API, so they can call sibling actions and read state.
Errors and panics always dispatch _FAILED before they reach the caller. When no reducer matches
"<name>Success", the router falls back to the reducer keyed "<name>", so one reducer can handle
a business action's successful result.

# Usage

	timer, err := modux.New(modux.Config{
		Name:         "timer",
		InitialState: 0,
		Actions: []modux.ActionSpec{
			modux.Simple("increase"),
			modux.Business("double", func(ctx context.Context, api *modux.API, _ ...any) (any, error) {
				return api.GetMyState().(int) * 2, nil
			}),
		},
		Reducers: map[string]domain.Reducer{
			"increase": modux.ReducerOf(func(n int, _ domain.Action) int { return n + 1 }),
			"double":   modux.ReducerOf(func(_ int, a domain.Action) int { return a.Payload.(int) }),
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	store := memory.NewStore(modux.Combine(timer), memory.WithMiddleware(memory.Thunk()))
	modux.Init(store, timer)

	_, _ = timer.API().Call(ctx, "increase")

Several units share one store through CombineReducers and InitModels; each unit reads its own
slice with API.GetMyState or the typed StateAs.
*/
package modux
