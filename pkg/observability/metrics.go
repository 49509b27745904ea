package observability

import (
	"context"

	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch and business action metrics in Prometheus.
type Metrics struct {
	dispatched *prometheus.CounterVec
	errors     prometheus.Counter
	business   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modux_actions_dispatched_total",
				Help: "Total number of actions reduced, by type",
			},
			[]string{"type"},
		),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "modux_dispatch_errors_total",
			Help: "Total number of dispatch calls that returned an error",
		}),
		business: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modux_business_actions_total",
				Help: "Total number of finished business actions, by outcome",
			},
			[]string{"unit", "action", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modux_business_action_duration_seconds",
				Help:    "Duration of business actions from STARTED to SUCCESS or FAILED",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"unit", "action", "outcome"},
		),
	}
	for _, c := range []prometheus.Collector{m.dispatched, m.errors, m.business, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware counts plain actions by type and failed dispatches.
// Place it after the thunk middleware to count only reduced actions.
func (m *Metrics) Middleware() ports.Middleware {
	return func(_ ports.Store, next ports.DispatchFunc) ports.DispatchFunc {
		return func(ctx context.Context, msg any) (any, error) {
			res, err := next(ctx, msg)
			if err != nil {
				m.errors.Inc()
				return res, err
			}
			if act, ok := msg.(domain.Action); ok {
				m.dispatched.WithLabelValues(act.Type).Inc()
			}
			return res, nil
		}
	}
}

// Hooks returns lifecycle hooks that record business action outcomes and durations.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	observe := func(_ context.Context, e *domain.BusinessEvent) {
		outcome := string(e.Phase)
		m.business.WithLabelValues(e.Unit, e.Action, outcome).Inc()
		m.duration.WithLabelValues(e.Unit, e.Action, outcome).Observe(e.Duration.Seconds())
	}
	return domain.LifecycleHooks{
		OnActionSucceeded: observe,
		OnActionFailed:    observe,
	}
}
