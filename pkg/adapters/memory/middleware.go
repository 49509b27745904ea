package memory

import (
	"context"

	"github.com/aretw0/modux/pkg/ports"
)

// chain applies middlewares in reverse order so the first one is outermost.
func chain(api ports.Store, base ports.DispatchFunc, mws ...ports.Middleware) ports.DispatchFunc {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](api, wrapped)
	}
	return wrapped
}

// Thunk runs ports.Thunk messages with the store's dispatch and state accessor
// and passes everything else down the chain.
func Thunk() ports.Middleware {
	return func(api ports.Store, next ports.DispatchFunc) ports.DispatchFunc {
		return func(ctx context.Context, msg any) (any, error) {
			switch fn := msg.(type) {
			case ports.Thunk:
				return fn(ctx, api.Dispatch, api.GetState)
			case func(context.Context, ports.DispatchFunc, func() any) (any, error):
				return fn(ctx, api.Dispatch, api.GetState)
			}
			return next(ctx, msg)
		}
	}
}
