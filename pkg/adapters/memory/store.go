package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
)

// Store implements ports.Store in memory.
// Safe for concurrent use. Reducers run under the store lock and must not dispatch.
type Store struct {
	mu      sync.RWMutex
	reducer domain.Reducer
	state   any

	middlewares []ports.Middleware
	dispatch    ports.DispatchFunc
	logger      *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithInitialState preloads the root state before the init action runs.
func WithInitialState(state any) Option {
	return func(s *Store) {
		s.state = state
	}
}

// WithMiddleware appends middleware to the dispatch chain.
// The first middleware is the outermost one.
func WithMiddleware(mws ...ports.Middleware) Option {
	return func(s *Store) {
		s.middlewares = append(s.middlewares, mws...)
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store around the root reducer and dispatches the init action.
// It panics if reducer is nil.
func NewStore(reducer domain.Reducer, opts ...Option) *Store {
	if reducer == nil {
		panic(domain.ErrNilReducer)
	}
	s := &Store{
		reducer: reducer,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.dispatch = chain(s, s.reduce, s.middlewares...)

	// Init bypasses middleware, like a store created before middleware is applied.
	if _, err := s.reduce(context.Background(), domain.NewAction(domain.InitActionType)); err != nil {
		panic(err)
	}
	s.logger.Debug("store initialized", "middlewares", len(s.middlewares))
	return s
}

// Dispatch submits msg through the middleware chain.
func (s *Store) Dispatch(ctx context.Context, msg any) (any, error) {
	return s.dispatch(ctx, msg)
}

// GetState returns the current root state.
func (s *Store) GetState() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Replace swaps the root reducer and re-runs the init action.
func (s *Store) Replace(reducer domain.Reducer) {
	if reducer == nil {
		panic(domain.ErrNilReducer)
	}
	s.mu.Lock()
	s.reducer = reducer
	s.mu.Unlock()
	_, _ = s.reduce(context.Background(), domain.NewAction(domain.InitActionType))
}

// reduce is the innermost dispatch: it only understands plain actions.
func (s *Store) reduce(ctx context.Context, msg any) (any, error) {
	var act domain.Action
	switch m := msg.(type) {
	case domain.Action:
		act = m
	case *domain.Action:
		if m == nil {
			return nil, fmt.Errorf("nil action: %w", domain.ErrUnsupportedMessage)
		}
		act = *m
	default:
		s.logger.Warn("dispatch rejected", "msg_type", fmt.Sprintf("%T", msg))
		return nil, fmt.Errorf("%T (is thunk middleware installed?): %w", msg, domain.ErrUnsupportedMessage)
	}
	if act.Type == "" {
		return nil, fmt.Errorf("action without type: %w", domain.ErrUnsupportedMessage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer(s.state, act)
	return act, nil
}
