package modux

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/internal/naming"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
)

// Config declares a unit. It is copied by New and never mutated.
type Config struct {
	// Name identifies the unit's state slice and derives the type prefix.
	Name string
	// InitialState is returned by the router when it receives a nil state.
	InitialState any
	// Actions are registered in order.
	Actions []ActionSpec
	// Reducers are keyed by lowerCamelCase reducer name (see Unit.Reduce).
	Reducers map[string]domain.Reducer
}

// Unit bundles the generated action creators, API and router for one named state slice.
// Everything except the store binding is fixed at construction.
type Unit struct {
	name         string
	prefix       string
	initialState any
	reducers     map[string]domain.Reducer

	specs    []ActionSpec
	entries  map[string]*entry
	creators map[string]ActionCreator
	types    []string

	api     *API
	binding atomic.Pointer[binding]
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// entry is the registration of one declared action.
type entry struct {
	spec       ActionSpec
	actionType string
	started    string
	success    string
	failed     string
}

type binding struct {
	store ports.Store
}

// Option defines a functional option for configuring a Unit.
type Option func(*Unit)

// WithLogger sets a custom structured logger for the unit.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Unit) {
		u.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for business actions.
// Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(u *Unit) {
		u.hooks = u.hooks.Merge(hooks)
	}
}

// New generates a unit from cfg.
// It fails on an empty name, an invalid action spec or a duplicate action name or type.
func New(cfg Config, opts ...Option) (*Unit, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("unit name: %w", domain.ErrEmptyName)
	}

	u := &Unit{
		name:         cfg.Name,
		prefix:       naming.Prefix(cfg.Name),
		initialState: cfg.InitialState,
		reducers:     make(map[string]domain.Reducer, len(cfg.Reducers)),
		specs:        slices.Clone(cfg.Actions),
		entries:      make(map[string]*entry, len(cfg.Actions)),
		creators:     make(map[string]ActionCreator),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.With("unit", u.name)
	u.api = &API{unit: u}

	for key, r := range cfg.Reducers {
		if r == nil {
			return nil, fmt.Errorf("unit %q reducer %q: %w", u.name, key, domain.ErrNilReducer)
		}
		u.reducers[key] = r
	}

	for _, spec := range u.specs {
		if err := u.register(spec); err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.name, err)
		}
	}
	u.checkReducers()
	return u, nil
}

// register derives the types of one action and installs its creators.
func (u *Unit) register(spec ActionSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if _, dup := u.entries[spec.name]; dup {
		return fmt.Errorf("action %q: %w", spec.name, domain.ErrDuplicateAction)
	}
	if !naming.RoundTrips(spec.name) {
		u.logger.Warn("action name does not round-trip through its type",
			"action", spec.name, "reducer_key", naming.ReducerKey(spec.name))
	}

	e := &entry{spec: spec, actionType: naming.ActionType(u.prefix, spec.name)}
	types := []string{e.actionType}
	if spec.kind != domain.KindSimple {
		e.started, e.success, e.failed = naming.PhaseTypes(e.actionType)
		types = []string{e.started, e.success, e.failed}
	}
	for _, t := range types {
		if _, dup := u.creators[t]; dup {
			return fmt.Errorf("action %q type %s: %w", spec.name, t, domain.ErrDuplicateAction)
		}
	}
	for _, t := range types {
		u.creators[t] = creatorFor(t)
		u.types = append(u.types, t)
	}
	u.entries[spec.name] = e
	return nil
}

// checkReducers logs reducers that none of the unit's own types route to.
func (u *Unit) checkReducers() {
	reachable := make(map[string]bool, len(u.types))
	for _, t := range u.types {
		name, _ := naming.ReducerName(u.prefix, t)
		reachable[name] = true
		if base, ok := naming.TrimSuccess(name); ok {
			reachable[base] = true
		}
	}
	for key := range u.reducers {
		if !reachable[key] {
			u.logger.Debug("reducer is not routed by any declared action", "reducer", key)
		}
	}
}

// Name returns the unit name (the key of its state slice).
func (u *Unit) Name() string { return u.name }

// Prefix returns the derived type prefix, e.g. "TIMER_".
func (u *Unit) Prefix() string { return u.prefix }

// API returns the auto-dispatching API.
func (u *Unit) API() *API { return u.api }

// InitialState returns the configured initial state.
func (u *Unit) InitialState() any { return u.initialState }

// Specs returns the declared actions in registration order.
func (u *Unit) Specs() []ActionSpec { return slices.Clone(u.specs) }

// Types returns every generated action type in registration order.
func (u *Unit) Types() []string { return slices.Clone(u.types) }

// ActionType returns the base type of a declared action.
func (u *Unit) ActionType(name string) (string, bool) {
	e, ok := u.entries[name]
	if !ok {
		return "", false
	}
	return e.actionType, true
}

// ActionCreators returns a copy of the creator table keyed by action type.
func (u *Unit) ActionCreators() map[string]ActionCreator {
	return maps.Clone(u.creators)
}

// ActionCreator returns the creator registered for an action type.
func (u *Unit) ActionCreator(actionType string) (ActionCreator, bool) {
	c, ok := u.creators[actionType]
	return c, ok
}

// Action builds the message for a declared action without dispatching it.
// Simple actions yield a domain.Action, business actions a ports.Thunk.
func (u *Unit) Action(name string, args ...any) (any, error) {
	e, ok := u.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", u.name, name, domain.ErrUnknownAction)
	}
	return u.message(e, args), nil
}

func (u *Unit) message(e *entry, args []any) any {
	switch e.spec.kind {
	case domain.KindBusiness:
		return u.businessThunk(e, args)
	case domain.KindAsync:
		return u.asyncThunk(e, args)
	default:
		return u.creators[e.actionType](args...)
	}
}

// Init binds the unit to a store. The unit does not own the store.
func (u *Unit) Init(store ports.Store) {
	if store == nil {
		u.binding.Store(nil)
		return
	}
	u.binding.Store(&binding{store: store})
	u.logger.Debug("unit bound to store")
}

func (u *Unit) store() (ports.Store, error) {
	b := u.binding.Load()
	if b == nil {
		return nil, fmt.Errorf("unit %q: %w", u.name, domain.ErrNotInitialized)
	}
	return b.store, nil
}

var _ ports.Model = (*Unit)(nil)
