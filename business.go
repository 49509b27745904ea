package modux

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
)

// businessThunk wraps a synchronous body in STARTED and SUCCESS/FAILED dispatches.
// A returned error or a panic dispatches FAILED first and then reaches the caller.
func (u *Unit) businessThunk(e *entry, args []any) ports.Thunk {
	return func(ctx context.Context, dispatch ports.DispatchFunc, _ func() any) (any, error) {
		start := time.Now()
		if err := u.begin(ctx, e, dispatch, args); err != nil {
			return nil, err
		}

		value, err := u.runSync(ctx, e, dispatch, args, start)
		if err != nil {
			u.fail(ctx, e, dispatch, args, err, start)
			return nil, err
		}
		return value, u.succeed(ctx, e, dispatch, args, value, start)
	}
}

// runSync calls the body alone. A panic in it dispatches FAILED and continues;
// panics raised later, e.g. by a reducer handling SUCCESS, are left alone.
func (u *Unit) runSync(ctx context.Context, e *entry, dispatch ports.DispatchFunc, args []any, start time.Time) (any, error) {
	defer func() {
		if r := recover(); r != nil {
			u.fail(ctx, e, dispatch, args, &PanicError{Value: r}, start)
			panic(r)
		}
	}()
	return e.spec.sync(ctx, u.api, args...)
}

// asyncThunk dispatches STARTED, then runs the body on its own goroutine.
// The returned *Future settles after SUCCESS or FAILED has been dispatched.
func (u *Unit) asyncThunk(e *entry, args []any) ports.Thunk {
	return func(ctx context.Context, dispatch ports.DispatchFunc, _ func() any) (any, error) {
		start := time.Now()
		if err := u.begin(ctx, e, dispatch, args); err != nil {
			return nil, err
		}

		f := newFuture()
		go func() {
			value, err := u.runAsync(ctx, e, args)
			if err != nil {
				u.fail(ctx, e, dispatch, args, err, start)
				f.settle(nil, err)
				return
			}
			f.settle(value, u.succeed(ctx, e, dispatch, args, value, start))
		}()
		return f, nil
	}
}

// runAsync converts a panic in the body into an error.
func (u *Unit) runAsync(ctx context.Context, e *entry, args []any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &PanicError{Value: r}
		}
	}()
	return e.spec.async(ctx, u.api, args...)
}

func (u *Unit) begin(ctx context.Context, e *entry, dispatch ports.DispatchFunc, args []any) error {
	if _, err := dispatch(ctx, u.creators[e.started](args...)); err != nil {
		return fmt.Errorf("dispatch %s: %w", e.started, err)
	}
	u.logger.Debug("business action started", "action", e.spec.name)
	u.hooks.Fire(ctx, &domain.BusinessEvent{
		Timestamp: time.Now(),
		Unit:      u.name,
		Action:    e.spec.name,
		Type:      e.started,
		Phase:     domain.PhaseStarted,
		Args:      args,
	})
	return nil
}

func (u *Unit) succeed(ctx context.Context, e *entry, dispatch ports.DispatchFunc, args []any, value any, start time.Time) error {
	if _, err := dispatch(ctx, u.creators[e.success](value)); err != nil {
		return fmt.Errorf("dispatch %s: %w", e.success, err)
	}
	elapsed := time.Since(start)
	u.logger.Debug("business action succeeded", "action", e.spec.name, "duration", elapsed)
	u.hooks.Fire(ctx, &domain.BusinessEvent{
		Timestamp: time.Now(),
		Unit:      u.name,
		Action:    e.spec.name,
		Type:      e.success,
		Phase:     domain.PhaseSuccess,
		Args:      args,
		Result:    value,
		Duration:  elapsed,
	})
	return nil
}

// fail signals FAILED. The caller still returns cause; a dispatch error here is only logged.
func (u *Unit) fail(ctx context.Context, e *entry, dispatch ports.DispatchFunc, args []any, cause error, start time.Time) {
	if _, err := dispatch(ctx, u.creators[e.failed](cause)); err != nil {
		u.logger.Error("failed to dispatch failure", "action", e.spec.name, "type", e.failed, "error", err)
	}
	elapsed := time.Since(start)
	u.logger.Warn("business action failed", "action", e.spec.name, "duration", elapsed, "error", cause)
	u.hooks.Fire(ctx, &domain.BusinessEvent{
		Timestamp: time.Now(),
		Unit:      u.name,
		Action:    e.spec.name,
		Type:      e.failed,
		Phase:     domain.PhaseFailed,
		Args:      args,
		Err:       cause,
		Duration:  elapsed,
	})
}
