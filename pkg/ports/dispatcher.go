package ports

import "context"

// DispatchFunc is the shape of a store's dispatch, also the unit of middleware composition.
type DispatchFunc func(ctx context.Context, msg any) (any, error)

// Thunk is a deferred unit of work. A store with thunk support runs it with
// its own dispatch and state accessor and returns the thunk's result.
type Thunk func(ctx context.Context, dispatch DispatchFunc, getState func() any) (any, error)

// Middleware wraps the next dispatch in a store's chain.
// api is the store itself, so dispatching through it re-enters the whole chain.
type Middleware func(api Store, next DispatchFunc) DispatchFunc
