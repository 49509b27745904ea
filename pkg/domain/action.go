package domain

// Action is the message reducers consume.
// It follows the flux standard action shape: a type, a payload and an error flag.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
	// Error is true when Payload carries an error (FAILED phases).
	Error bool `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewAction builds an Action of the given type.
// The first argument, if any, becomes the payload; an error payload sets Error.
func NewAction(actionType string, args ...any) Action {
	act := Action{Type: actionType}
	if len(args) == 0 {
		return act
	}
	act.Payload = args[0]
	if _, ok := act.Payload.(error); ok {
		act.Error = true
	}
	return act
}

// ActionKind tells how an action was declared.
type ActionKind string

const (
	// KindSimple is a string-declared action dispatched verbatim.
	KindSimple ActionKind = "simple"
	// KindBusiness wraps synchronous business logic in STARTED/SUCCESS/FAILED.
	KindBusiness ActionKind = "business"
	// KindAsync wraps asynchronous business logic in STARTED/SUCCESS/FAILED.
	KindAsync ActionKind = "async"
)

// Phase identifies one of the three messages a business action emits.
type Phase string

const (
	PhaseStarted Phase = "started"
	PhaseSuccess Phase = "success"
	PhaseFailed  Phase = "failed"
)
