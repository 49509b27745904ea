package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/internal/presentation/graph"
	"github.com/aretw0/modux/pkg/adapters/memory"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/manifest"
	"github.com/aretw0/modux/pkg/observability"
	"github.com/aretw0/modux/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <manifest> <unit.action[=payload]>...",
		Short: "Dispatch actions against the units of a manifest",
		Long: `Builds every unit of the manifest into one in-memory store, dispatches the given
actions in order and prints the final state. Payloads are parsed as YAML, so
"timer.increase=5" sends the integer 5.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			output, _ := cmd.Flags().GetString("output")
			showMetrics, _ := cmd.Flags().GetBool("metrics")
			showGraph, _ := cmd.Flags().GetBool("graph")

			calls, err := parseCalls(args[1:])
			if err != nil {
				return err
			}
			logger := logging.NewWriter(cmd.ErrOrStderr(), logging.Level(verbose))

			reg := prometheus.NewRegistry()
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}

			f, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			units, err := f.Build(
				manifest.WithLogger(logger),
				manifest.WithUnitOptions(modux.WithLifecycleHooks(metrics.Hooks())),
			)
			if err != nil {
				return err
			}

			history := &typeHistory{}
			store := memory.NewStore(modux.Combine(units...),
				memory.WithLogger(logger),
				memory.WithMiddleware(
					memory.Thunk(),
					observability.LoggingMiddleware(logger),
					metrics.Middleware(),
					history.middleware,
				),
			)
			modux.Init(store, units...)

			if err := dispatchCalls(cmd.Context(), units, calls); err != nil {
				return err
			}
			if err := writeState(cmd.OutOrStdout(), store.GetState(), output); err != nil {
				return err
			}
			if showMetrics {
				if err := writeMetrics(cmd.OutOrStdout(), reg); err != nil {
					return err
				}
			}
			if showGraph {
				_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(units, history.overlay()))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "yaml", "Output format of the final state (yaml|json)")
	cmd.Flags().Bool("metrics", false, "Print dispatch metrics in the Prometheus text format")
	cmd.Flags().Bool("graph", false, "Print a Mermaid flowchart highlighting the dispatched types")
	return cmd
}

// typeHistory records the types of reduced actions.
type typeHistory struct {
	mu    sync.Mutex
	types []string
}

func (h *typeHistory) middleware(_ ports.Store, next ports.DispatchFunc) ports.DispatchFunc {
	return func(ctx context.Context, msg any) (any, error) {
		res, err := next(ctx, msg)
		if act, ok := msg.(domain.Action); ok && err == nil {
			h.mu.Lock()
			h.types = append(h.types, act.Type)
			h.mu.Unlock()
		}
		return res, err
	}
}

func (h *typeHistory) overlay() *graph.Overlay {
	h.mu.Lock()
	defer h.mu.Unlock()
	o := &graph.Overlay{DispatchedTypes: slices.Clone(h.types)}
	if n := len(h.types); n > 0 {
		o.LastType = h.types[n-1]
	}
	return o
}

type call struct {
	unit    string
	action  string
	payload []any
}

// parseCalls parses "unit.action" and "unit.action=payload" arguments.
func parseCalls(args []string) ([]call, error) {
	calls := make([]call, 0, len(args))
	for _, arg := range args {
		target, raw, hasPayload := strings.Cut(arg, "=")
		unit, action, ok := strings.Cut(target, ".")
		if !ok || unit == "" || action == "" {
			return nil, fmt.Errorf("invalid action %q: expected unit.action[=payload]", arg)
		}
		c := call{unit: unit, action: action}
		if hasPayload {
			var payload any
			if err := yaml.Unmarshal([]byte(raw), &payload); err != nil {
				return nil, fmt.Errorf("invalid payload for %s: %w", target, err)
			}
			c.payload = []any{payload}
		}
		calls = append(calls, c)
	}
	return calls, nil
}

func dispatchCalls(ctx context.Context, units []*modux.Unit, calls []call) error {
	if ctx == nil {
		ctx = context.Background()
	}
	byName := make(map[string]*modux.Unit, len(units))
	for _, u := range units {
		byName[u.Name()] = u
	}
	for _, c := range calls {
		u, ok := byName[c.unit]
		if !ok {
			return fmt.Errorf("unknown unit %q", c.unit)
		}
		if _, err := u.API().Await(ctx, c.action, c.payload...); err != nil {
			return err
		}
	}
	return nil
}

func writeState(w io.Writer, state any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
