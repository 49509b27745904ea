package ports

import (
	"context"

	"github.com/aretw0/modux/pkg/domain"
)

// Store is the external state container a unit is bound to.
// Implementations must be safe for concurrent Dispatch and GetState calls.
type Store interface {
	// Dispatch submits a message (a domain.Action or a Thunk) and returns
	// the result of the middleware chain.
	Dispatch(ctx context.Context, msg any) (any, error)

	// GetState returns the current root state.
	GetState() any
}

// StoreFactory builds a Store around a root reducer. Used by contract tests.
type StoreFactory func(reducer domain.Reducer) Store
