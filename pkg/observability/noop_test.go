package observability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yumiproject/yumi-events/pkg/observability"
)

func TestNoopMetrics_DoesNotPanic(t *testing.T) {
	var m observability.MetricsRecorder = observability.NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordRegistration(context.Background(), "ping", "default")
		m.RecordRebuild(context.Background(), "ping", 3)
		m.RecordCreation(context.Background(), "ping")
	})
}

func TestNoopSpanManager_DoesNotPanic(t *testing.T) {
	var s observability.SpanManager = observability.NoopSpanManager{}
	assert.NotPanics(t, func() {
		ctx, span := s.StartRegistrationSpan(context.Background(), "ping", "default")
		s.AddSpanEvent(ctx, "registered")
		s.EndSpanWithError(span, nil)

		_, span2 := s.StartListenAllSpan(context.Background(), 2)
		s.EndSpanWithError(span2, errors.New("boom"))
	})
}
