package domain

import "errors"

// ErrDuplicateAction is returned when two actions of one unit share a name or a derived type.
var ErrDuplicateAction = errors.New("duplicate action")

// ErrUnknownAction is returned when an API call names an action the unit does not declare.
var ErrUnknownAction = errors.New("unknown action")

// ErrNotInitialized is returned when a unit is used before being bound to a store.
var ErrNotInitialized = errors.New("unit not initialized")

// ErrInvalidModels is returned when a collection of models is neither a slice nor a map.
var ErrInvalidModels = errors.New("models must be a slice or a map")

// ErrUnsupportedMessage is returned when a store receives a message it cannot reduce.
var ErrUnsupportedMessage = errors.New("unsupported message")

// ErrEmptyName is returned when a unit or action has no name.
var ErrEmptyName = errors.New("empty name")

// ErrNilReducer is returned when a reducer or business function is nil.
var ErrNilReducer = errors.New("nil reducer or business function")
