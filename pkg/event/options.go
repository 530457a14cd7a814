package event

import (
	"log/slog"

	"github.com/yumiproject/yumi-events/pkg/observability"
)

// Options configures an Event, FilteredEvent, or Manager at construction
// time. Fields are resolved into a private config struct, mirroring the
// flowgraph Context's functional-option pattern.
type Options struct {
	Logger                *slog.Logger
	CycleWarningsDisabled bool
	Metrics               observability.MetricsRecorder
	Spans                 observability.SpanManager
}

// Option mutates Options during construction.
type Option func(*Options)

// WithLogger overrides the default slog.Default() sink used for sort cycle
// warnings and registration, rebuild, creation and ListenAll-failure
// logging. Purging collected derived events is not logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithCycleWarningsDisabled suppresses the sorter's cycle warning log line,
// matching phasegraph.WithCycleWarningsDisabled — useful for tests that
// deliberately construct cyclic phase orderings.
func WithCycleWarningsDisabled() Option {
	return func(o *Options) { o.CycleWarningsDisabled = true }
}

// WithMetrics attaches a MetricsRecorder. Defaults to observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithSpans attaches a SpanManager. Defaults to observability.NoopSpanManager{}.
func WithSpans(s observability.SpanManager) Option {
	return func(o *Options) { o.Spans = s }
}

func resolveOptions(opts []Option) Options {
	o := Options{
		Logger:  slog.Default(),
		Metrics: observability.NoopMetrics{},
		Spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
