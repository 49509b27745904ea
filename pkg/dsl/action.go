package dsl

import (
	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/naming"
	"github.com/aretw0/modux/pkg/domain"
)

// ActionBuilder provides a fluent API for attaching reducers to one action.
// Reducer keys are derived from the action name, so names that do not
// round-trip through their type still route correctly.
type ActionBuilder struct {
	spec    modux.ActionSpec
	builder *Builder
}

func (a *ActionBuilder) key(suffix string) string {
	return naming.ReducerKey(a.spec.Name()) + suffix
}

// Reduce handles the simple action, or the business action's SUCCESS through the fallback.
func (a *ActionBuilder) Reduce(r domain.Reducer) *ActionBuilder {
	a.builder.setReducer(a.key(""), r)
	return a
}

// OnStarted handles the business action's STARTED message.
func (a *ActionBuilder) OnStarted(r domain.Reducer) *ActionBuilder {
	a.builder.setReducer(a.key("Started"), r)
	return a
}

// OnSuccess handles the business action's SUCCESS message, taking precedence over Reduce.
func (a *ActionBuilder) OnSuccess(r domain.Reducer) *ActionBuilder {
	a.builder.setReducer(a.key("Success"), r)
	return a
}

// OnFailed handles the business action's FAILED message.
func (a *ActionBuilder) OnFailed(r domain.Reducer) *ActionBuilder {
	a.builder.setReducer(a.key("Failed"), r)
	return a
}

// Spec returns the underlying action spec.
func (a *ActionBuilder) Spec() modux.ActionSpec {
	return a.spec
}

// Unit returns the owning builder to continue the chain.
func (a *ActionBuilder) Unit() *Builder {
	return a.builder
}
