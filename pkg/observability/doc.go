/*
Package observability provides store middleware and unit hooks for metrics and logs.

  - Metrics: Prometheus counters for reduced actions and dispatch errors, plus business
    action outcomes and durations through domain.LifecycleHooks.
  - LoggingMiddleware: structured slog output for every dispatch.
*/
package observability
