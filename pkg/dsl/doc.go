/*
Package dsl provides a fluent builder for modux units.

It keeps each reducer next to the action it serves and derives reducer keys from action
names, so the naming convention never has to be spelled out by hand.

Example usage:

	timer, err := dsl.New("timer").
		Initial(0).
		Simple("increase").Reduce(increment).Unit().
		Async("load", fetch).
			OnStarted(markLoading).
			Reduce(storeResult).
			OnFailed(storeError).Unit().
		Build(modux.WithLogger(logger))
*/
package dsl
