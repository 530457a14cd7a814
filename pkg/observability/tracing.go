package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the yumi-events tracer instance, backed by the global OTel
// tracer provider.
var tracer = otel.Tracer("yumi-events")

// SpanManager handles trace span lifecycle for event dispatch.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartRegistrationSpan starts a span covering a single Register call.
	StartRegistrationSpan(ctx context.Context, eventType, phase string) (context.Context, trace.Span)

	// StartListenAllSpan starts a span covering a Manager.ListenAll call.
	StartListenAllSpan(ctx context.Context, eventCount int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartRegistrationSpan(ctx context.Context, eventType, phase string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "events.register",
		trace.WithAttributes(
			attribute.String("event_type", eventType),
			attribute.String("phase", phase),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) StartListenAllSpan(ctx context.Context, eventCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "events.listen_all",
		trace.WithAttributes(
			attribute.Int("event_count", eventCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
