package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records event-dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records a handler being added to a phase.
	RecordRegistration(ctx context.Context, eventType string, phase string)

	// RecordRebuild records an invoker rebuild triggered by a registration or
	// a phase ordering change, along with the handler count it was built from.
	RecordRebuild(ctx context.Context, eventType string, handlerCount int)

	// RecordCreation records a Manager emitting a creation notification for a
	// newly constructed event.
	RecordCreation(ctx context.Context, eventType string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	rebuilds      metric.Int64Counter
	handlerCount  metric.Int64Histogram
	creations     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance, lazily
// initialized on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("yumi-events")

	registrations, err := meter.Int64Counter("events.registrations",
		metric.WithDescription("Number of handler registrations"),
	)
	if err != nil {
		return nil, err
	}

	rebuilds, err := meter.Int64Counter("events.invoker_rebuilds",
		metric.WithDescription("Number of invoker rebuilds"),
	)
	if err != nil {
		return nil, err
	}

	handlerCount, err := meter.Int64Histogram("events.handler_count",
		metric.WithDescription("Handler count at invoker rebuild time"),
	)
	if err != nil {
		return nil, err
	}

	creations, err := meter.Int64Counter("events.creations",
		metric.WithDescription("Number of events created through a Manager"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		rebuilds:      rebuilds,
		handlerCount:  handlerCount,
		creations:     creations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordRegistration(ctx context.Context, eventType string, phase string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("phase", phase),
	))
}

func (m *otelMetrics) RecordRebuild(ctx context.Context, eventType string, handlerCount int) {
	attrs := metric.WithAttributes(attribute.String("event_type", eventType))
	m.rebuilds.Add(ctx, 1, attrs)
	m.handlerCount.Record(ctx, int64(handlerCount), attrs)
}

func (m *otelMetrics) RecordCreation(ctx context.Context, eventType string) {
	m.creations.Add(ctx, 1, metric.WithAttributes(attribute.String("event_type", eventType)))
}
