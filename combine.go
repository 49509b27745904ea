package modux

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/modux/pkg/adapters/memory"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/ports"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InvalidModelsError is returned when a models collection is neither a slice nor a map.
type InvalidModelsError struct {
	Type string
}

func (e *InvalidModelsError) Error() string {
	return fmt.Sprintf("parameter 'models' must be a slice or a map, not %s", e.Type)
}

// Unwrap returns domain.ErrInvalidModels.
func (e *InvalidModelsError) Unwrap() error {
	return domain.ErrInvalidModels
}

// CombineReducers combines the routers of every ports.Model in models into one
// root reducer whose state is keyed by model name.
//
// models may be a slice, array or map of any element type; elements that are not
// ports.Model are skipped. Maps are walked in sorted key order. Models sharing
// a name keep the first position and the last reducer.
func CombineReducers(models any) (domain.Reducer, error) {
	table := orderedmap.New[string, domain.Reducer]()
	err := eachModel(models, func(m ports.Model) {
		table.Set(m.Name(), m.Reduce)
	})
	if err != nil {
		return nil, err
	}
	return memory.CombineReducers(table), nil
}

// Combine is CombineReducers for a statically typed list of units.
func Combine(units ...*Unit) domain.Reducer {
	reducer, _ := CombineReducers(units)
	return reducer
}

// InitModels binds every ports.Model in models to store.
// It accepts the same collections as CombineReducers.
func InitModels(models any, store ports.Store) error {
	return eachModel(models, func(m ports.Model) {
		m.Init(store)
	})
}

// Init binds units to store.
func Init(store ports.Store, units ...*Unit) {
	for _, u := range units {
		if u != nil {
			u.Init(store)
		}
	}
}

// eachModel visits the models of a slice or map collection, skipping everything else.
func eachModel(models any, fn func(ports.Model)) error {
	v := reflect.ValueOf(models)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			visit(v.Index(i), fn)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			visit(v.MapIndex(k), fn)
		}
	default:
		return &InvalidModelsError{Type: fmt.Sprintf("%T", models)}
	}
	return nil
}

func visit(v reflect.Value, fn func(ports.Model)) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return
		}
	}
	if !v.CanInterface() {
		return
	}
	m, ok := v.Interface().(ports.Model)
	if !ok {
		return
	}
	// An interface holding a nil pointer still needs filtering.
	if inner := reflect.ValueOf(m); inner.Kind() == reflect.Pointer && inner.IsNil() {
		return
	}
	fn(m)
}
