package event

import "cmp"

// ContextualisedEvent is an independent Event whose phases were snapshot
// from a FilteredEvent's state at the moment of derivation, filtered by a
// specific context value. It behaves as a plain Event for every purpose
// except that it additionally exposes the context it was derived for.
// Registering directly on it falls through to ordinary Event semantics and
// does not propagate back to the parent FilteredEvent.
type ContextualisedEvent[I cmp.Ordered, T any, C any] struct {
	*Event[I, T]
	context C
}

// Context returns the value this event was derived for.
func (ce *ContextualisedEvent[I, T, C]) Context() C {
	return ce.context
}
