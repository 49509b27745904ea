package dsl

import (
	"fmt"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/pkg/domain"
)

// Builder manages the construction of one unit.
type Builder struct {
	name     string
	initial  any
	actions  []*ActionBuilder
	reducers map[string]domain.Reducer
}

// New creates a new unit builder.
func New(name string) *Builder {
	return &Builder{
		name:     name,
		reducers: make(map[string]domain.Reducer),
	}
}

// Initial sets the unit's initial state.
func (b *Builder) Initial(state any) *Builder {
	b.initial = state
	return b
}

// Simple declares an action without business logic.
func (b *Builder) Simple(name string) *ActionBuilder {
	return b.add(modux.Simple(name))
}

// Business declares a synchronous business action.
func (b *Builder) Business(name string, fn modux.BusinessFunc) *ActionBuilder {
	return b.add(modux.Business(name, fn))
}

// Async declares an asynchronous business action.
func (b *Builder) Async(name string, fn modux.AsyncFunc) *ActionBuilder {
	return b.add(modux.Async(name, fn))
}

// Reducer registers a reducer under a raw reducer name.
func (b *Builder) Reducer(key string, r domain.Reducer) *Builder {
	b.setReducer(key, r)
	return b
}

func (b *Builder) add(spec modux.ActionSpec) *ActionBuilder {
	ab := &ActionBuilder{spec: spec, builder: b}
	b.actions = append(b.actions, ab)
	return ab
}

func (b *Builder) setReducer(key string, r domain.Reducer) {
	b.reducers[key] = r
}

// Config returns the modux.Config described so far.
func (b *Builder) Config() modux.Config {
	specs := make([]modux.ActionSpec, len(b.actions))
	for i, ab := range b.actions {
		specs[i] = ab.spec
	}
	reducers := make(map[string]domain.Reducer, len(b.reducers))
	for k, r := range b.reducers {
		reducers[k] = r
	}
	return modux.Config{
		Name:         b.name,
		InitialState: b.initial,
		Actions:      specs,
		Reducers:     reducers,
	}
}

// Build compiles the description into a unit.
func (b *Builder) Build(opts ...modux.Option) (*modux.Unit, error) {
	unit, err := modux.New(b.Config(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build unit: %w", err)
	}
	return unit, nil
}
