package event

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/yumiproject/yumi-events/pkg/invoker"
	"github.com/yumiproject/yumi-events/pkg/observability"
	"github.com/yumiproject/yumi-events/pkg/phasegraph"
)

// phaseEntry pairs a phasegraph node (the sortable identity, carrying the
// preceding/following edges) with the handlers registered into that phase.
type phaseEntry[I comparable, T any] struct {
	node     *phasegraph.Node[I]
	handlers []T
}

// core holds everything Event and FilteredEvent share: the phase graph, the
// consolidated listener array, the atomically-published invoker, and the
// lock protecting all of it. Event and FilteredEvent compose a *core rather
// than inheriting from a common base type, per the "filtered adds a sidecar"
// design — Go has no class hierarchy to reproduce here.
type core[I cmp.Ordered, T any] struct {
	mu sync.Mutex

	handlerType  reflect.Type
	defaultPhase I
	factory      invoker.Factory[T]

	logger                phasegraph.Logger
	slogLogger            *slog.Logger
	cycleWarningsDisabled bool
	metrics               observability.MetricsRecorder
	spans                 observability.SpanManager

	phases       map[I]*phaseEntry[I, T]
	sortedPhases []*phaseEntry[I, T]
	listeners    []T
	invokerRef   atomic.Pointer[T]
}

func newCore[I cmp.Ordered, T any](handlerType reflect.Type, defaultPhase I, factory invoker.Factory[T], opts []Option) *core[I, T] {
	o := resolveOptions(opts)
	c := &core[I, T]{
		handlerType:           handlerType,
		defaultPhase:          defaultPhase,
		factory:               factory,
		cycleWarningsDisabled: o.CycleWarningsDisabled,
		metrics:               o.Metrics,
		spans:                 o.Spans,
		phases:                make(map[I]*phaseEntry[I, T]),
	}
	// Guard against storing a typed-nil *slog.Logger in the phasegraph.Logger
	// interface field: an interface holding a nil pointer is itself non-nil,
	// which would defeat the "c.logger != nil" checks downstream.
	if o.Logger != nil {
		c.logger = o.Logger
		c.slogLogger = o.Logger
	}
	inv := factory.Apply(nil)
	c.invokerRef.Store(&inv)
	return c
}

// newChildCore builds an empty core sharing a parent's handler type, default
// phase, factory, and observability configuration — used when a
// FilteredEvent derives a ContextualisedEvent.
func newChildCore[I cmp.Ordered, T any](parent *core[I, T]) *core[I, T] {
	c := &core[I, T]{
		handlerType:           parent.handlerType,
		defaultPhase:          parent.defaultPhase,
		factory:               parent.factory,
		logger:                parent.logger,
		slogLogger:            parent.slogLogger,
		cycleWarningsDisabled: parent.cycleWarningsDisabled,
		metrics:               parent.metrics,
		spans:                 parent.spans,
		phases:                make(map[I]*phaseEntry[I, T]),
	}
	inv := parent.factory.Apply(nil)
	c.invokerRef.Store(&inv)
	return c
}

func (c *core[I, T]) invoker() T {
	return *c.invokerRef.Load()
}

// phaseLabel renders a phase identifier for logging and span attributes.
func phaseLabel[I cmp.Ordered](phase I) string {
	return fmt.Sprint(phase)
}

// getOrCreatePhaseLocked never triggers a resort; callers that create a new
// phase are responsible for deciding whether one is needed.
func (c *core[I, T]) getOrCreatePhaseLocked(id I) (entry *phaseEntry[I, T], created bool) {
	if e, ok := c.phases[id]; ok {
		return e, false
	}
	e := &phaseEntry[I, T]{node: phasegraph.NewNode(id)}
	c.phases[id] = e
	return e, true
}

// resortLocked recomputes sortedPhases from the current phase graph.
func (c *core[I, T]) resortLocked() {
	nodes := make([]*phasegraph.Node[I], 0, len(c.phases))
	for _, e := range c.phases {
		nodes = append(nodes, e.node)
	}

	var opts []phasegraph.SortOption
	if c.cycleWarningsDisabled {
		opts = append(opts, phasegraph.WithCycleWarningsDisabled())
	}
	if c.logger != nil {
		opts = append(opts, phasegraph.WithLogger(c.logger))
	}
	phasegraph.Sort(nodes, cmp.Compare[I], opts...)

	sorted := make([]*phaseEntry[I, T], len(nodes))
	for i, n := range nodes {
		sorted[i] = c.phases[n.ID]
	}
	c.sortedPhases = sorted
}

// republishLocked rebuilds the consolidated listeners array from
// sortedPhases and atomically publishes a freshly built invoker. The
// factory only ever sees a defensive copy, never the live slice.
func (c *core[I, T]) republishLocked() {
	total := 0
	for _, e := range c.sortedPhases {
		total += len(e.handlers)
	}
	listeners := make([]T, 0, total)
	for _, e := range c.sortedPhases {
		listeners = append(listeners, e.handlers...)
	}
	c.listeners = listeners

	cp := make([]T, len(listeners))
	copy(cp, listeners)
	inv := c.factory.Apply(cp)
	c.invokerRef.Store(&inv)

	eventType := c.handlerType.String()
	observability.LogRebuild(c.slogLogger, eventType, len(listeners))
	c.metrics.RecordRebuild(context.Background(), eventType, len(listeners))
}

// registerLocked appends handler to the named phase, creating the phase (and
// triggering a resort) if it didn't already exist, then republishes.
func (c *core[I, T]) registerLocked(phase I, handler T) {
	entry, created := c.getOrCreatePhaseLocked(phase)
	entry.handlers = append(entry.handlers, handler)
	if created {
		c.resortLocked()
	}
	c.republishLocked()

	phaseName := fmt.Sprint(phase)
	eventType := c.handlerType.String()
	observability.LogRegistration(c.slogLogger, eventType, phaseName)
	c.metrics.RecordRegistration(context.Background(), eventType, phaseName)
}

// addPhaseOrderingLocked links first before second, creating either phase
// node if needed (without resorting on creation — a single resort follows
// the edge insertion), then republishes.
func (c *core[I, T]) addPhaseOrderingLocked(first, second I) error {
	firstEntry, _ := c.getOrCreatePhaseLocked(first)
	secondEntry, _ := c.getOrCreatePhaseLocked(second)
	if err := phasegraph.Link(firstEntry.node, secondEntry.node); err != nil {
		return err
	}
	c.resortLocked()
	c.republishLocked()
	return nil
}

