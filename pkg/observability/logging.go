package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
)

// LoggingMiddleware logs every dispatched message at debug level and failures at warn level.
func LoggingMiddleware(logger *slog.Logger) ports.Middleware {
	return func(_ ports.Store, next ports.DispatchFunc) ports.DispatchFunc {
		return func(ctx context.Context, msg any) (any, error) {
			start := time.Now()
			res, err := next(ctx, msg)
			attrs := []any{"msg_type", describe(msg), "duration", time.Since(start)}
			if err != nil {
				logger.WarnContext(ctx, "dispatch failed", append(attrs, "error", err)...)
				return res, err
			}
			logger.DebugContext(ctx, "dispatched", attrs...)
			return res, nil
		}
	}
}

func describe(msg any) string {
	switch m := msg.(type) {
	case domain.Action:
		return m.Type
	case ports.Thunk:
		return "thunk"
	default:
		return fmt.Sprintf("%T", msg)
	}
}
