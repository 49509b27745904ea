package modux

import (
	"context"
	"fmt"

	"github.com/aretw0/modux/pkg/domain"
)

// BusinessFunc is the body of a synchronous business action.
// api is the owning unit's API, so the body may call sibling actions or read state.
type BusinessFunc func(ctx context.Context, api *API, args ...any) (any, error)

// AsyncFunc is the body of an asynchronous business action.
// It runs on its own goroutine; its outcome is delivered through a *Future.
type AsyncFunc func(ctx context.Context, api *API, args ...any) (any, error)

// ActionSpec declares one action of a unit. Build it with Simple, Business or Async.
type ActionSpec struct {
	name  string
	kind  domain.ActionKind
	sync  BusinessFunc
	async AsyncFunc
}

// Simple declares an action without business logic; it is dispatched verbatim.
func Simple(name string) ActionSpec {
	return ActionSpec{name: name, kind: domain.KindSimple}
}

// Business declares a synchronous business action.
func Business(name string, fn BusinessFunc) ActionSpec {
	return ActionSpec{name: name, kind: domain.KindBusiness, sync: fn}
}

// Async declares an asynchronous business action.
func Async(name string, fn AsyncFunc) ActionSpec {
	return ActionSpec{name: name, kind: domain.KindAsync, async: fn}
}

// Actions declares several simple actions at once.
func Actions(names ...string) []ActionSpec {
	specs := make([]ActionSpec, len(names))
	for i, name := range names {
		specs[i] = Simple(name)
	}
	return specs
}

// Name returns the declared action name.
func (s ActionSpec) Name() string { return s.name }

// Kind returns how the action was declared.
func (s ActionSpec) Kind() domain.ActionKind { return s.kind }

func (s ActionSpec) validate() error {
	if s.name == "" {
		return domain.ErrEmptyName
	}
	switch s.kind {
	case domain.KindSimple:
		return nil
	case domain.KindBusiness:
		if s.sync == nil {
			return fmt.Errorf("action %q: %w", s.name, domain.ErrNilReducer)
		}
	case domain.KindAsync:
		if s.async == nil {
			return fmt.Errorf("action %q: %w", s.name, domain.ErrNilReducer)
		}
	default:
		return fmt.Errorf("action %q: unknown kind %q", s.name, s.kind)
	}
	return nil
}

// ActionCreator builds an action from call arguments; the first argument is the payload.
type ActionCreator func(args ...any) domain.Action

func creatorFor(actionType string) ActionCreator {
	return func(args ...any) domain.Action {
		return domain.NewAction(actionType, args...)
	}
}

// PanicError carries a value recovered from a panicking business action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("business action panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
