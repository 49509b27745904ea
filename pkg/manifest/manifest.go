package manifest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/pkg/dsl"
	"gopkg.in/yaml.v3"
)

// File is the root of a manifest.
type File struct {
	Units []UnitSpec `yaml:"units" json:"units"`
}

// UnitSpec declares one unit. Manifest actions are always simple actions.
type UnitSpec struct {
	Name         string         `yaml:"name" json:"name"`
	InitialState any            `yaml:"initialState" json:"initialState"`
	Actions      []string       `yaml:"actions" json:"actions"`
	Reducers     map[string]any `yaml:"reducers" json:"reducers"`
}

// Load reads a manifest file (YAML or JSON, by extension) and validates it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a manifest. An ext of ".json" selects JSON, anything else YAML.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest yaml: %w", err)
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every unit and reduces the failures to one *AggregateError.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(f.Units))
	for i, u := range f.Units {
		key := fmt.Sprintf("units[%d]", i)
		switch {
		case u.Name == "":
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "required"})
		case seen[u.Name]:
			errs = append(errs, &ValidationError{Key: key + ".name", Reason: "duplicate unit", Value: u.Name})
		}
		seen[u.Name] = true

		actions := make(map[string]bool, len(u.Actions))
		for j, a := range u.Actions {
			akey := fmt.Sprintf("%s.actions[%d]", key, j)
			switch {
			case a == "":
				errs = append(errs, &ValidationError{Key: akey, Reason: "required"})
			case actions[a]:
				errs = append(errs, &ValidationError{Key: akey, Reason: "duplicate action", Value: a})
			}
			actions[a] = true
		}

		for _, name := range sortedKeys(u.Reducers) {
			rkey := fmt.Sprintf("%s.reducers.%s", key, name)
			spec, err := decodeReducer(u.Reducers[name])
			if err != nil {
				errs = append(errs, &ValidationError{Key: rkey, Reason: err.Error()})
				continue
			}
			if reason := spec.check(); reason != "" {
				errs = append(errs, &ValidationError{Key: rkey, Reason: reason})
			}
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

type buildConfig struct {
	logger  *slog.Logger
	options []modux.Option
}

// Option configures how manifest units are built.
type Option func(*buildConfig)

// WithLogger sets the logger used by the units and their compiled reducers.
func WithLogger(logger *slog.Logger) Option {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// WithUnitOptions forwards options to every modux.New call.
func WithUnitOptions(opts ...modux.Option) Option {
	return func(c *buildConfig) {
		c.options = append(c.options, opts...)
	}
}

// Build builds every declared unit in manifest order.
func (f *File) Build(opts ...Option) ([]*modux.Unit, error) {
	cfg := &buildConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	unitOpts := append([]modux.Option{modux.WithLogger(cfg.logger)}, cfg.options...)

	units := make([]*modux.Unit, 0, len(f.Units))
	for _, spec := range f.Units {
		u, err := spec.build(cfg.logger, unitOpts)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", spec.Name, err)
		}
		units = append(units, u)
	}
	return units, nil
}

// build attaches reducers named after an action through the builder, so their
// keys are normalized; any other key is registered verbatim.
func (s UnitSpec) build(logger *slog.Logger, opts []modux.Option) (*modux.Unit, error) {
	b := dsl.New(s.Name).Initial(s.InitialState)
	actions := make(map[string]*dsl.ActionBuilder, len(s.Actions))
	for _, name := range s.Actions {
		actions[name] = b.Simple(name)
	}

	reducerLogger := logger.With("unit", s.Name)
	for _, key := range sortedKeys(s.Reducers) {
		spec, err := decodeReducer(s.Reducers[key])
		if err != nil {
			return nil, fmt.Errorf("reducer %q: %w", key, err)
		}
		r := spec.reducer(s.InitialState, reducerLogger.With("reducer", key))
		if ab, ok := actions[key]; ok {
			ab.Reduce(r)
			continue
		}
		b.Reducer(key, r)
	}
	return b.Build(opts...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ActionNames returns the declared actions of the named unit.
func (f *File) ActionNames(unit string) ([]string, bool) {
	for _, u := range f.Units {
		if u.Name == unit {
			return slices.Clone(u.Actions), true
		}
	}
	return nil, false
}
