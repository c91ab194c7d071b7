package event

import (
	"github.com/google/uuid"
)

// Event is the descriptor passed to every handler of a dispatch pass.
// Handlers may mutate it; Dispatch returns the same pointer afterwards.
type Event struct {
	// Type is the event name handlers were registered under.
	Type string

	// Target is the object the event was originally triggered on.
	// Trigger sets it when empty; Dispatch leaves it untouched.
	Target any

	// CurrentTarget is the receiver whose handlers are running.
	CurrentTarget any

	// Data carries optional caller-supplied values.
	Data map[string]any

	propagationStopped bool
}

// NewEvent creates a minimal event descriptor of the given type.
func NewEvent(name string) *Event {
	return &Event{Type: name}
}

// StopPropagation prevents a bubbling trigger from reaching further ancestors.
// Handlers on the current receiver still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.propagationStopped
}

// HandlerFunc handles a dispatched event. args are the extra positional
// arguments given to Dispatch, in order.
type HandlerFunc func(ev *Event, args ...any)

// Listener is a registered handler with a stable identity.
//
// Go funcs cannot be compared, so removal matches on the *Listener pointer,
// or on the listener's ID when only the identity token is known.
type Listener struct {
	id string
	fn HandlerFunc
}

// Func wraps fn in a new Listener with a fresh identity.
func Func(fn HandlerFunc) *Listener {
	return &Listener{
		id: "lst-" + uuid.NewString(),
		fn: fn,
	}
}

// ID returns the listener's identity token.
func (l *Listener) ID() string {
	return l.id
}

// Handle invokes the wrapped function. A nil function is ignored.
func (l *Listener) Handle(ev *Event, args ...any) {
	if l.fn != nil {
		l.fn(ev, args...)
	}
}

// Registration is one entry in an emitter's ordered handler sequence.
type Registration struct {
	Name     string
	Listener *Listener
}

// Matcher decides whether a stored registration should be removed.
// name and l are the arguments passed to RemoveEventMatch.
type Matcher func(reg Registration, name string, l *Listener) bool
