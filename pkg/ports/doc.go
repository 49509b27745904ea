/*
Package ports defines the interfaces that decouple units from the state container.

# Key Interfaces

  - Store: dispatches messages and exposes the root state.
  - Model: a named state slice with its reducer; implemented by *modux.Unit.
  - DispatchFunc / Thunk: the dispatch signature and deferred work dispatched through it.
*/
package ports
