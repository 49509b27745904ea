// Package naming derives action types and reducer names from unit and action names.
//
// The casing rules must be symmetric: a reducer registered under an action's name is
// found again by converting the dispatched type back to lowerCamelCase.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Phase suffixes appended to a business action's type.
const (
	SuffixStarted = "_STARTED"
	SuffixSuccess = "_SUCCESS"
	SuffixFailed  = "_FAILED"
)

// SuccessFallback is the reducer-name suffix that may be trimmed when no exact reducer exists.
const SuccessFallback = "Success"

// Prefix returns the type prefix for a unit, e.g. "myTimer" -> "MY_TIMER_".
func Prefix(unitName string) string {
	return strcase.ToScreamingSnake(unitName) + "_"
}

// ActionType joins a unit prefix and an action name, e.g. ("TIMER_", "asyncAction") -> "TIMER_ASYNC_ACTION".
func ActionType(prefix, actionName string) string {
	return prefix + strcase.ToScreamingSnake(actionName)
}

// PhaseTypes returns the STARTED, SUCCESS and FAILED types for a business action type.
func PhaseTypes(actionType string) (started, success, failed string) {
	return actionType + SuffixStarted, actionType + SuffixSuccess, actionType + SuffixFailed
}

// ReducerName strips prefix from actionType and lowerCamelCases the rest.
// It reports false when actionType does not belong to prefix.
func ReducerName(prefix, actionType string) (string, bool) {
	rest, ok := strings.CutPrefix(actionType, prefix)
	if !ok || rest == "" {
		return "", false
	}
	return strcase.ToLowerCamel(rest), true
}

// TrimSuccess removes a trailing "Success" from a reducer name.
func TrimSuccess(reducerName string) (string, bool) {
	trimmed, ok := strings.CutSuffix(reducerName, SuccessFallback)
	if !ok || trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// RoundTrips reports whether a reducer keyed by actionName is reachable from its derived type.
func RoundTrips(actionName string) bool {
	return ReducerKey(actionName) == actionName
}

// ReducerKey is the reducer name a dispatched action of actionName routes to.
func ReducerKey(actionName string) string {
	return strcase.ToLowerCamel(strcase.ToScreamingSnake(actionName))
}
