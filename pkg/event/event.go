// Package event provides a typed, phased, filterable dispatch point: an
// Event holds handlers grouped into named phases, orders those phases with
// a cycle-tolerant topological sort (pkg/phasegraph), and publishes a single
// invoker — a value shaped like the handler type that, when called, fans
// out to every registered handler in canonical order (pkg/invoker).
//
// Construction follows a mutex-guarded builder with an immutable,
// defensively-copied published artifact: registration locks, mutates the
// phase graph, and atomically republishes a fresh invoker, so concurrent
// dispatch never observes a half-built one. Logging and observability are
// configured through functional options, and live events are tracked in a
// generic registry (pkg/registry).
package event

import (
	"cmp"
	"context"
	"reflect"

	"github.com/yumiproject/yumi-events/pkg/invoker"
)

// AnyEvent is the type-erased surface every Event and FilteredEvent
// satisfies, letting EventManager.ListenAll and the creation-event payload
// refer to an event without knowing its handler type T.
type AnyEvent interface {
	// HandlerType returns the reflect.Type of the event's handler type T.
	HandlerType() reflect.Type

	// registerWithPhase type-asserts phase and handler back to I and T and
	// performs the registration. It is unexported: only ListenAll, within
	// this package, constructs the type-erased call.
	registerWithPhase(phase any, handler any) error
}

// Event is a typed, phased dispatch point. I is the phase identifier type
// (must support a total order); T is the handler type, supplied by the
// event's creator together with an invoker.Factory[T] describing how many
// handlers combine into one dispatchable value.
type Event[I cmp.Ordered, T any] struct {
	core *core[I, T]
}

// New constructs an Event with an empty phase map and a well-defined
// initial invoker obtained by calling factory with no handlers.
func New[I cmp.Ordered, T any](handlerType reflect.Type, defaultPhase I, factory invoker.Factory[T], opts ...Option) *Event[I, T] {
	return &Event[I, T]{core: newCore[I, T](handlerType, defaultPhase, factory, opts)}
}

// Register adds handler to the event's default phase.
func (e *Event[I, T]) Register(handler T) error {
	return e.RegisterPhase(e.core.defaultPhase, handler)
}

// RegisterPhase adds handler to the named phase, creating the phase (and
// triggering a resort) if this is its first reference.
func (e *Event[I, T]) RegisterPhase(phase I, handler T) error {
	if isNil(any(handler)) {
		return invalidArg("Register", ErrNilHandler)
	}

	_, span := e.core.spans.StartRegistrationSpan(context.Background(), e.core.handlerType.String(), phaseLabel(phase))
	defer func() { e.core.spans.EndSpanWithError(span, nil) }()

	e.core.mu.Lock()
	defer e.core.mu.Unlock()
	e.core.registerLocked(phase, handler)
	return nil
}

// AddPhaseOrdering declares that first must run before second. Both phases
// are created on first reference if needed. Self-ordering is rejected.
func (e *Event[I, T]) AddPhaseOrdering(first, second I) error {
	if first == second {
		return invalidArg("AddPhaseOrdering", ErrSelfLink)
	}
	e.core.mu.Lock()
	defer e.core.mu.Unlock()
	return e.core.addPhaseOrderingLocked(first, second)
}

// Invoker returns the current invoker. Callers must not cache the result
// across registrations — a fresh call always observes the latest snapshot,
// and object identity is not guaranteed stable.
func (e *Event[I, T]) Invoker() T {
	return e.core.invoker()
}

// Type returns the reflect.Type of the handler type T.
func (e *Event[I, T]) Type() reflect.Type {
	return e.core.handlerType
}

// DefaultPhase returns the phase identifier used when a registration omits
// one.
func (e *Event[I, T]) DefaultPhase() I {
	return e.core.defaultPhase
}

// HandlerType implements AnyEvent.
func (e *Event[I, T]) HandlerType() reflect.Type {
	return e.core.handlerType
}

func (e *Event[I, T]) registerWithPhase(phase any, handler any) error {
	p, ok := phase.(I)
	if !ok {
		return invalidArgf("ListenAll", "phase value %v is not of the event's phase type", phase)
	}
	h, ok := handler.(T)
	if !ok {
		return invalidArgf("ListenAll", "object does not implement handler type %v", e.core.handlerType)
	}
	return e.RegisterPhase(p, h)
}
