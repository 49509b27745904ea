package ports

import "github.com/aretw0/modux/pkg/domain"

// Model is anything that owns a named state slice and can be bound to a store.
// Composition helpers only consider values that implement it.
type Model interface {
	Name() string
	Reduce(state any, action domain.Action) any
	Init(store Store)
}
