package event

import (
	"cmp"
	"reflect"
	"runtime"
	"weak"

	"github.com/yumiproject/yumi-events/pkg/invoker"
	"github.com/yumiproject/yumi-events/pkg/phasegraph"
)

// guardedHandler pairs a handler with an optional predicate over a context
// value. A nil selector means the handler is global — every context
// matches it.
type guardedHandler[T any, C comparable] struct {
	handler  T
	selector func(C) bool
}

// filteredPhase is the sidecar a FilteredEvent keeps per phase, parallel to
// the phaseEntry its embedded core already tracks — composition rather
// than a parallel class hierarchy.
type filteredPhase[T any, C comparable] struct {
	guarded []guardedHandler[T, C]
}

// FilteredEvent extends Event with selector-guarded handlers and the
// ability to materialise a derived ContextualisedEvent for a specific
// context value, weakly retained so the parent never keeps a derived event
// alive past its last external reference.
type FilteredEvent[I cmp.Ordered, T any, C comparable] struct {
	core *core[I, T]

	guardedPhases map[I]*filteredPhase[T, C]

	// contextualised holds weak references keyed by context equality (C is
	// constrained comparable so it can serve directly as the map key,
	// dropping the source's separate Key(C) string indirection).
	contextualised map[C]weak.Pointer[ContextualisedEvent[I, T, C]]
}

// NewFiltered constructs an empty FilteredEvent.
func NewFiltered[I cmp.Ordered, T any, C comparable](handlerType reflect.Type, defaultPhase I, factory invoker.Factory[T], opts ...Option) *FilteredEvent[I, T, C] {
	return &FilteredEvent[I, T, C]{
		core:           newCore[I, T](handlerType, defaultPhase, factory, opts),
		guardedPhases:  make(map[I]*filteredPhase[T, C]),
		contextualised: make(map[C]weak.Pointer[ContextualisedEvent[I, T, C]]),
	}
}

// Register adds an unconditional (global) handler to the default phase.
func (f *FilteredEvent[I, T, C]) Register(handler T) error {
	return f.RegisterPhaseSelector(f.core.defaultPhase, handler, nil)
}

// RegisterPhase adds an unconditional (global) handler to phase.
func (f *FilteredEvent[I, T, C]) RegisterPhase(phase I, handler T) error {
	return f.RegisterPhaseSelector(phase, handler, nil)
}

// RegisterSelector adds a guarded handler to the default phase.
func (f *FilteredEvent[I, T, C]) RegisterSelector(handler T, selector func(C) bool) error {
	return f.RegisterPhaseSelector(f.core.defaultPhase, handler, selector)
}

// RegisterPhaseSelector adds a guarded handler to phase. A nil selector
// makes the handler global. A global handler also joins the parent's own
// consolidated listeners (same as a plain Event); a guarded handler does
// not, so direct dispatch on the parent never calls it. Either way the
// handler is offered, via the same selector, to every live derived
// ContextualisedEvent.
func (f *FilteredEvent[I, T, C]) RegisterPhaseSelector(phase I, handler T, selector func(C) bool) error {
	if isNil(any(handler)) {
		return invalidArg("Register", ErrNilHandler)
	}

	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if selector == nil {
		f.core.registerLocked(phase, handler)
	} else if _, created := f.core.getOrCreatePhaseLocked(phase); created {
		f.core.resortLocked()
		f.core.republishLocked()
	}
	gp := f.getOrCreateGuardedPhaseLocked(phase)
	gp.guarded = append(gp.guarded, guardedHandler[T, C]{handler: handler, selector: selector})

	f.purgeLocked()
	for c, wp := range f.contextualised {
		ce := wp.Value()
		if ce == nil {
			continue
		}
		if selector == nil || selector(c) {
			_ = ce.RegisterPhase(phase, handler)
		}
	}
	return nil
}

// AddPhaseOrdering links first before second on the parent and mirrors the
// same edge into every live derived event.
func (f *FilteredEvent[I, T, C]) AddPhaseOrdering(first, second I) error {
	if first == second {
		return invalidArg("AddPhaseOrdering", ErrSelfLink)
	}

	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if err := f.core.addPhaseOrderingLocked(first, second); err != nil {
		return err
	}

	f.purgeLocked()
	for _, wp := range f.contextualised {
		if ce := wp.Value(); ce != nil {
			_ = ce.AddPhaseOrdering(first, second)
		}
	}
	return nil
}

// Invoker, Type, DefaultPhase, HandlerType mirror Event's read surface.
func (f *FilteredEvent[I, T, C]) Invoker() T            { return f.core.invoker() }
func (f *FilteredEvent[I, T, C]) Type() reflect.Type    { return f.core.handlerType }
func (f *FilteredEvent[I, T, C]) DefaultPhase() I       { return f.core.defaultPhase }
func (f *FilteredEvent[I, T, C]) HandlerType() reflect.Type {
	return f.core.handlerType
}

func (f *FilteredEvent[I, T, C]) registerWithPhase(phase any, handler any) error {
	p, ok := phase.(I)
	if !ok {
		return invalidArgf("ListenAll", "phase value %v is not of the event's phase type", phase)
	}
	h, ok := handler.(T)
	if !ok {
		return invalidArgf("ListenAll", "object does not implement handler type %v", f.core.handlerType)
	}
	return f.RegisterPhase(p, h)
}

// ForContext returns the derived ContextualisedEvent for context c. Unless
// replace is true, a live derived event already materialised for an equal
// c is returned instead of building a new one.
func (f *FilteredEvent[I, T, C]) ForContext(c C, replace bool) *ContextualisedEvent[I, T, C] {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	f.purgeLocked()

	if !replace {
		if wp, ok := f.contextualised[c]; ok {
			if ce := wp.Value(); ce != nil {
				return ce
			}
		}
	}

	ce := f.buildDerivedLocked(c)
	f.contextualised[c] = weak.Make(ce)
	runtime.AddCleanup(ce, f.onDerivedCollected, c)
	return ce
}

// onDerivedCollected runs after a derived event has been garbage collected,
// removing its now-dangling weak pointer. Purging also happens
// opportunistically on every mutation and before every ForContext lookup
// (see DESIGN.md for why both are kept).
func (f *FilteredEvent[I, T, C]) onDerivedCollected(c C) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()
	if wp, ok := f.contextualised[c]; ok && wp.Value() == nil {
		delete(f.contextualised, c)
	}
}

func (f *FilteredEvent[I, T, C]) purgeLocked() {
	for c, wp := range f.contextualised {
		if wp.Value() == nil {
			delete(f.contextualised, c)
		}
	}
}

func (f *FilteredEvent[I, T, C]) getOrCreateGuardedPhaseLocked(phase I) *filteredPhase[T, C] {
	gp, ok := f.guardedPhases[phase]
	if !ok {
		gp = &filteredPhase[T, C]{}
		f.guardedPhases[phase] = gp
	}
	return gp
}

// buildDerivedLocked snapshots the parent's current phase topology and
// guarded handlers, filtered by selector(c), into an independent core.
func (f *FilteredEvent[I, T, C]) buildDerivedLocked(c C) *ContextualisedEvent[I, T, C] {
	child := newChildCore[I, T](f.core)

	for id := range f.core.phases {
		child.phases[id] = &phaseEntry[I, T]{node: phasegraph.NewNode(id)}
	}
	for id, entry := range f.core.phases {
		for nextID := range entry.node.Next() {
			_ = phasegraph.Link(child.phases[id].node, child.phases[nextID].node)
		}
	}
	for id, gp := range f.guardedPhases {
		dst := child.phases[id]
		for _, gh := range gp.guarded {
			if gh.selector == nil || gh.selector(c) {
				dst.handlers = append(dst.handlers, gh.handler)
			}
		}
	}

	child.resortLocked()
	child.republishLocked()

	return &ContextualisedEvent[I, T, C]{Event: &Event[I, T]{core: child}, context: c}
}
