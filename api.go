package modux

import (
	"context"
	"fmt"

	"github.com/aretw0/modux/pkg/domain"
)

// API is the auto-dispatching surface of a unit.
// Every declared action is reachable through Call; GetState and GetMyState
// read the store the unit was bound to.
type API struct {
	unit *Unit
}

// Call builds the declared action with args and dispatches it through the bound store.
//
// Simple actions return the store's dispatch result (the action itself for a plain store).
// Business actions return the body's value and error, after SUCCESS or FAILED was dispatched.
// Async actions return a *Future right after STARTED was dispatched.
func (a *API) Call(ctx context.Context, name string, args ...any) (any, error) {
	e, ok := a.unit.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", a.unit.name, name, domain.ErrUnknownAction)
	}
	store, err := a.unit.store()
	if err != nil {
		return nil, err
	}
	return store.Dispatch(ctx, a.unit.message(e, args))
}

// Await is Call followed by waiting on the *Future of an async action.
// For other kinds it behaves exactly like Call.
func (a *API) Await(ctx context.Context, name string, args ...any) (any, error) {
	res, err := a.Call(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	if f, ok := res.(*Future); ok {
		return f.Await(ctx)
	}
	return res, nil
}

// Names returns the declared action names in registration order.
func (a *API) Names() []string {
	names := make([]string, 0, len(a.unit.specs))
	for _, s := range a.unit.specs {
		names = append(names, s.name)
	}
	return names
}

// GetState returns the whole state of the bound store, or nil before Init.
func (a *API) GetState() any {
	store, err := a.unit.store()
	if err != nil {
		return nil
	}
	return store.GetState()
}

// GetMyState returns the unit's own slice of the bound store's state.
func (a *API) GetMyState() any {
	v, _ := domain.Slice(a.GetState(), a.unit.name)
	return v
}
