package memory

import (
	"github.com/aretw0/modux/pkg/domain"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type slot struct {
	key     string
	reducer domain.Reducer
}

// CombineReducers builds a root reducer whose state is a map[string]any.
// Each key's slice is reduced independently by its reducer, in table order.
// The table is copied, so later changes to reducers have no effect.
func CombineReducers(reducers *orderedmap.OrderedMap[string, domain.Reducer]) domain.Reducer {
	slots := make([]slot, 0, reducers.Len())
	for pair := reducers.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			continue
		}
		slots = append(slots, slot{key: pair.Key, reducer: pair.Value})
	}

	return func(state any, action domain.Action) any {
		prev, _ := state.(map[string]any)
		next := make(map[string]any, len(slots))
		for _, s := range slots {
			var slice any
			if prev != nil {
				slice = prev[s.key]
			}
			next[s.key] = s.reducer(slice, action)
		}
		return next
	}
}
