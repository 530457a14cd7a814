package event

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/yumiproject/yumi-events/pkg/invoker"
	"github.com/yumiproject/yumi-events/pkg/observability"
	"github.com/yumiproject/yumi-events/pkg/registry"
)

// ManagerEventCreation is the payload carried by a Manager's creation
// event. Because Go cannot express "an Event of some T unknown at this
// call site" as a single concrete type, the payload carries the new
// event's type-erased AnyEvent handle plus its reflect.Type and default
// phase, rather than the strongly-typed event itself — callers that know
// the concrete T can still type-assert Event off the AnyEvent field.
type ManagerEventCreation[I cmp.Ordered] struct {
	CreationID   string
	HandlerType  reflect.Type
	DefaultPhase I
	Event        AnyEvent
}

// PhaseDeclarer is an optional interface a handler object may implement to
// map a handler interface type to a named phase, consulted by ListenAll
// instead of a declarative per-type annotation (Go has none). The phase
// name is parsed through the owning Manager's idParser to obtain a
// concrete phase identifier.
type PhaseDeclarer interface {
	ListenerPhase(handlerType reflect.Type) (phaseName string, ok bool)
}

// Manager constructs and tracks events sharing a common phase identifier
// type and default phase.
type Manager[I cmp.Ordered] struct {
	defaultPhase I
	idParser     func(string) (I, error)
	opts         []Option

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	creation *Event[I, func(ManagerEventCreation[I])]
	live     *registry.Registry[string, AnyEvent]
}

// NewManager constructs a Manager. idParser converts a phase name (as used
// by PhaseDeclarer) into the manager's phase identifier type.
func NewManager[I cmp.Ordered](defaultPhase I, idParser func(string) (I, error), opts ...Option) *Manager[I] {
	resolved := resolveOptions(opts)
	return &Manager[I]{
		defaultPhase: defaultPhase,
		idParser:     idParser,
		opts:         opts,
		logger:       resolved.Logger,
		metrics:      resolved.Metrics,
		spans:        resolved.Spans,
		creation: New[I, func(ManagerEventCreation[I])](
			reflect.TypeFor[func(ManagerEventCreation[I])](),
			defaultPhase,
			invoker.SequenceFactory[ManagerEventCreation[I]](),
			opts...,
		),
		live: registry.New[string, AnyEvent](),
	}
}

// DefaultPhase returns the phase identifier new events register into by
// default.
func (m *Manager[I]) DefaultPhase() I { return m.defaultPhase }

// IDParser returns the string->I conversion this manager was built with.
func (m *Manager[I]) IDParser() func(string) (I, error) { return m.idParser }

// CreationEvent returns the event fired once per successful create call,
// before any user registration on the newly created event.
func (m *Manager[I]) CreationEvent() *Event[I, func(ManagerEventCreation[I])] {
	return m.creation
}

// LiveEvents returns the number of events this manager has ever created.
func (m *Manager[I]) LiveEvents() int { return m.live.Len() }

func (m *Manager[I]) mergedOptions(extra []Option) []Option {
	if len(extra) == 0 {
		return m.opts
	}
	merged := make([]Option, 0, len(m.opts)+len(extra))
	merged = append(merged, m.opts...)
	merged = append(merged, extra...)
	return merged
}

func (m *Manager[I]) publishCreation(e AnyEvent) {
	id := uuid.New().String()
	m.live.Register(id, e)

	eventType := e.HandlerType().String()
	observability.LogCreation(m.logger, eventType)
	m.metrics.RecordCreation(context.Background(), eventType)

	invoke := m.creation.Invoker()
	invoke(ManagerEventCreation[I]{
		CreationID:   id,
		HandlerType:  e.HandlerType(),
		DefaultPhase: m.defaultPhase,
		Event:        e,
	})
}

// Create builds a new Event of handler type T, dispatched through factory.
//
// Spec.md's "create(handlerInterface)" variant infers the invoker strategy
// by reflecting on the handler interface's sole method's return type — a
// capability Go's static type system has no equivalent for (there is no
// way to derive a generic type parameter from a runtime-inspected function
// signature). The Go analogue, per the source's own design notes, is to
// require the caller to pick one of the ready-made pkg/invoker factories
// (or supply a custom one) explicitly.
func Create[I cmp.Ordered, T any](m *Manager[I], factory invoker.Factory[T], opts ...Option) (*Event[I, T], error) {
	if factory == nil {
		return nil, invalidArg("Create", ErrNilHandler)
	}
	e := New[I, T](reflect.TypeFor[T](), m.defaultPhase, factory, m.mergedOptions(opts)...)
	m.publishCreation(e)
	return e, nil
}

// CreateWithEmpty builds an Event whose invoker, for zero handlers, returns
// emptyImpl unchanged, and for exactly one handler returns it unchanged —
// factory is only consulted for two or more. Intended for hot dispatch
// paths that want to skip the factory-call overhead in the common cases.
func CreateWithEmpty[I cmp.Ordered, T any](m *Manager[I], emptyImpl T, factory invoker.Factory[T], opts ...Option) (*Event[I, T], error) {
	if factory == nil {
		return nil, invalidArg("CreateWithEmpty", ErrNilHandler)
	}
	wrapped := invoker.FactoryFunc[T](func(handlers []T) T {
		switch len(handlers) {
		case 0:
			return emptyImpl
		case 1:
			return handlers[0]
		default:
			return factory.Apply(handlers)
		}
	})
	return Create[I, T](m, wrapped, opts...)
}

// CreateWithPhases builds an Event and then links consecutive entries of
// phases into a default canonical order. phases must contain the manager's
// default phase and have no duplicates.
func CreateWithPhases[I cmp.Ordered, T any](m *Manager[I], factory invoker.Factory[T], phases []I, opts ...Option) (*Event[I, T], error) {
	if err := validatePhaseOrder(m.defaultPhase, phases); err != nil {
		return nil, err
	}
	e, err := Create[I, T](m, factory, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(phases); i++ {
		if err := e.AddPhaseOrdering(phases[i], phases[i+1]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// CreateFiltered builds a new FilteredEvent of handler type T and context
// type C.
func CreateFiltered[I cmp.Ordered, T any, C comparable](m *Manager[I], factory invoker.Factory[T], opts ...Option) (*FilteredEvent[I, T, C], error) {
	if factory == nil {
		return nil, invalidArg("CreateFiltered", ErrNilHandler)
	}
	fe := NewFiltered[I, T, C](reflect.TypeFor[T](), m.defaultPhase, factory, m.mergedOptions(opts)...)
	m.publishCreation(fe)
	return fe, nil
}

// CreateFilteredWithPhases is CreateFiltered plus a default phase ordering,
// exactly like CreateWithPhases.
func CreateFilteredWithPhases[I cmp.Ordered, T any, C comparable](m *Manager[I], factory invoker.Factory[T], phases []I, opts ...Option) (*FilteredEvent[I, T, C], error) {
	if err := validatePhaseOrder(m.defaultPhase, phases); err != nil {
		return nil, err
	}
	fe, err := CreateFiltered[I, T, C](m, factory, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(phases); i++ {
		if err := fe.AddPhaseOrdering(phases[i], phases[i+1]); err != nil {
			return nil, err
		}
	}
	return fe, nil
}

func validatePhaseOrder[I comparable](defaultPhase I, phases []I) error {
	if len(phases) == 0 {
		return invalidArgf("CreateWithPhases", "default-phases array must not be empty")
	}

	var errs []error
	seen := make(map[I]bool, len(phases))
	foundDefault := false
	for _, p := range phases {
		if seen[p] {
			errs = append(errs, invalidArgf("CreateWithPhases", "duplicate phase %v in default-phases array", p))
		}
		seen[p] = true
		if p == defaultPhase {
			foundDefault = true
		}
	}
	if !foundDefault {
		errs = append(errs, invalidArgf("CreateWithPhases", "default-phases array must contain the manager's default phase %v", defaultPhase))
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
