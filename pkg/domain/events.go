package domain

import (
	"context"
	"time"
)

// BusinessEvent describes one phase of a business action's execution.
type BusinessEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Unit      string    `json:"unit"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	Phase     Phase     `json:"phase"`
	Args      []any     `json:"args,omitempty"`
	Result    any       `json:"result,omitempty"`
	Err       error     `json:"-"`
	// Duration is zero for the started phase.
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for business action observability.
type LifecycleHooks struct {
	OnActionStarted   func(context.Context, *BusinessEvent)
	OnActionSucceeded func(context.Context, *BusinessEvent)
	OnActionFailed    func(context.Context, *BusinessEvent)
}

// Fire invokes the hook matching e.Phase, if set.
func (h LifecycleHooks) Fire(ctx context.Context, e *BusinessEvent) {
	var fn func(context.Context, *BusinessEvent)
	switch e.Phase {
	case PhaseStarted:
		fn = h.OnActionStarted
	case PhaseSuccess:
		fn = h.OnActionSucceeded
	case PhaseFailed:
		fn = h.OnActionFailed
	}
	if fn != nil {
		fn(ctx, e)
	}
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActionStarted:   chain(h.OnActionStarted, other.OnActionStarted),
		OnActionSucceeded: chain(h.OnActionSucceeded, other.OnActionSucceeded),
		OnActionFailed:    chain(h.OnActionFailed, other.OnActionFailed),
	}
}

func chain(a, b func(context.Context, *BusinessEvent)) func(context.Context, *BusinessEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *BusinessEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
