// Package manifest builds units from YAML or JSON files.
//
// A manifest declares units with simple actions and declarative reducers:
//
//	units:
//	  - name: timer
//	    initialState: {count: 0, msg: ""}
//	    actions: [increase, setMsg, reset]
//	    reducers:
//	      increase: {op: add, field: count}
//	      setMsg: {op: set, field: msg}
//	      reset: reset
//
// Reducer ops are set, add, toggle, merge, append and reset. Numeric and boolean
// coercion is weak, so "2" adds like 2.
package manifest
