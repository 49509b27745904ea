package manifest

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/aretw0/modux/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Op names a declarative reducer operation.
type Op string

const (
	// OpSet replaces the target with Value, or with the payload when Value is empty.
	OpSet Op = "set"
	// OpAdd adds By (default: the payload, then 1) to a numeric target.
	OpAdd Op = "add"
	// OpToggle negates a boolean target.
	OpToggle Op = "toggle"
	// OpMerge merges the payload map into a map target.
	OpMerge Op = "merge"
	// OpAppend appends Value, or the payload, to a list target.
	OpAppend Op = "append"
	// OpReset restores the target from the unit's initial state.
	OpReset Op = "reset"
)

// ReducerSpec describes one reducer of a manifest unit.
// An empty Field targets the whole unit state.
type ReducerSpec struct {
	Op    Op     `mapstructure:"op"`
	Field string `mapstructure:"field"`
	Value any    `mapstructure:"value"`
	By    any    `mapstructure:"by"`
}

// decodeReducer accepts either a bare op name ("reset") or a map.
func decodeReducer(raw any) (ReducerSpec, error) {
	var spec ReducerSpec
	if s, ok := raw.(string); ok {
		spec.Op = Op(s)
		return spec, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &spec,
	})
	if err != nil {
		return spec, err
	}
	if err := dec.Decode(raw); err != nil {
		return spec, err
	}
	return spec, nil
}

// check returns the reason the spec is invalid, or "".
func (s ReducerSpec) check() string {
	switch s.Op {
	case OpSet, OpToggle, OpMerge, OpAppend, OpReset:
		return ""
	case OpAdd:
		if s.By != nil {
			if _, err := cast.ToFloat64E(s.By); err != nil {
				return "by must be numeric"
			}
		}
		return ""
	case "":
		return "op is required"
	default:
		return fmt.Sprintf("unknown op %q", s.Op)
	}
}

// reducer compiles the spec. A failing op logs and leaves the state untouched.
func (s ReducerSpec) reducer(initial any, logger *slog.Logger) domain.Reducer {
	return func(state any, action domain.Action) any {
		next, err := s.apply(initial, state, action)
		if err != nil {
			logger.Warn("reducer op failed",
				"op", s.Op, "field", s.Field, "type", action.Type, "error", err)
			return state
		}
		return next
	}
}

func (s ReducerSpec) apply(initial, state any, action domain.Action) (any, error) {
	if s.Field == "" {
		if s.Op == OpReset {
			return initial, nil
		}
		return s.compute(state, action)
	}

	var (
		next any
		err  error
	)
	if s.Op == OpReset {
		next, _ = domain.Slice(initial, s.Field)
	} else {
		cur, _ := domain.Slice(state, s.Field)
		if next, err = s.compute(cur, action); err != nil {
			return nil, err
		}
	}
	return with(state, s.Field, next)
}

func (s ReducerSpec) compute(cur any, action domain.Action) (any, error) {
	switch s.Op {
	case OpSet:
		return s.operand(action), nil
	case OpAdd:
		delta := s.By
		if delta == nil {
			delta = action.Payload
		}
		if delta == nil {
			delta = 1
		}
		return add(cur, delta)
	case OpToggle:
		b, err := cast.ToBoolE(cur)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case OpMerge:
		return merge(cur, action.Payload)
	case OpAppend:
		var list []any
		if cur != nil {
			var err error
			if list, err = cast.ToSliceE(cur); err != nil {
				return nil, err
			}
		}
		out := make([]any, 0, len(list)+1)
		out = append(out, list...)
		return append(out, s.operand(action)), nil
	default:
		return nil, fmt.Errorf("unknown op %q", s.Op)
	}
}

func (s ReducerSpec) operand(action domain.Action) any {
	if s.Value != nil {
		return s.Value
	}
	return action.Payload
}

// add keeps integer arithmetic when both sides are integers.
func add(cur, delta any) (any, error) {
	if cur == nil {
		cur = 0
	}
	if isInteger(cur) && isInteger(delta) {
		return cast.ToInt(cur) + cast.ToInt(delta), nil
	}
	a, err := cast.ToFloat64E(cur)
	if err != nil {
		return nil, err
	}
	b, err := cast.ToFloat64E(delta)
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		_, err := cast.ToInt64E(v)
		return err == nil
	default:
		return false
	}
}

func merge(cur, payload any) (any, error) {
	out := map[string]any{}
	if cur != nil {
		m, err := cast.ToStringMapE(cur)
		if err != nil {
			return nil, err
		}
		maps.Copy(out, m)
	}
	if payload != nil {
		m, err := cast.ToStringMapE(payload)
		if err != nil {
			return nil, err
		}
		maps.Copy(out, m)
	}
	return out, nil
}

// with returns a copy of state with field set to v.
func with(state any, field string, v any) (any, error) {
	out := map[string]any{}
	if state != nil {
		m, err := cast.ToStringMapE(state)
		if err != nil {
			return nil, fmt.Errorf("field %q on non-map state: %w", field, err)
		}
		maps.Copy(out, m)
	}
	out[field] = v
	return out, nil
}
