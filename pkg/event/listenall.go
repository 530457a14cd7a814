package event

import (
	"context"
	"fmt"
	"reflect"

	"github.com/yumiproject/yumi-events/pkg/invoker"
	"github.com/yumiproject/yumi-events/pkg/observability"
)

// ListenAll registers obj against every one of events in one atomic step:
// either every event gains a registration, or (on any validation failure)
// none do. For each event, obj must be assignable to the event's handler
// type, which must itself be a named, non-generic interface — reflective
// registration against a bare function handler type or a generic interface
// is refused, since there would be no safe way to bind it.
//
// If obj implements PhaseDeclarer, its mapping from handler type to phase
// name (parsed through m's idParser) is consulted for each event; an event
// whose handler type is absent from the mapping registers into m's default
// phase.
func (m *Manager[I]) ListenAll(obj any, events ...AnyEvent) error {
	if len(events) == 0 {
		return invalidArg("ListenAll", ErrEmptyListenAll)
	}

	_, span := m.spans.StartListenAllSpan(context.Background(), len(events))
	var err error
	defer func() { m.spans.EndSpanWithError(span, err) }()
	defer func() {
		if err != nil {
			observability.LogListenAllFailure(m.logger, len(events), err)
		}
	}()

	err = m.listenAll(obj, events)
	return err
}

func (m *Manager[I]) listenAll(obj any, events []AnyEvent) error {
	objType := reflect.TypeOf(obj)
	declarer, hasDeclarer := obj.(PhaseDeclarer)

	type planned struct {
		event AnyEvent
		phase I
	}
	plan := make([]planned, 0, len(events))

	for _, e := range events {
		ht := e.HandlerType()
		if !invoker.IsNamedInterface(ht) {
			return invalidArgf("ListenAll", "handler type %v is not a named, non-generic interface", ht)
		}
		if objType == nil || !objType.Implements(ht) {
			return invalidArgf("ListenAll", "%v does not implement handler type %v", objType, ht)
		}

		phase := m.defaultPhase
		if hasDeclarer {
			if name, ok := declarer.ListenerPhase(ht); ok {
				parsed, err := m.idParser(name)
				if err != nil {
					return invalidArgf("ListenAll", "phase name %q could not be parsed: %v", name, err)
				}
				phase = parsed
			}
		}
		plan = append(plan, planned{event: e, phase: phase})
	}

	for _, p := range plan {
		if err := p.event.registerWithPhase(p.phase, obj); err != nil {
			return fmt.Errorf("listenAll: registration failed after validation passed: %w", err)
		}
	}
	return nil
}
