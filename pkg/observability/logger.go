// Package observability provides production-grade observability features
// for event dispatch: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds event-dispatch context to a logger, returning a new
// logger with event_type and phase fields.
func EnrichLogger(logger *slog.Logger, eventType, phase string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("event_type", eventType),
		slog.String("phase", phase),
	)
}

// LogRegistration logs a handler being added to a phase.
func LogRegistration(logger *slog.Logger, eventType, phase string) {
	if logger == nil {
		return
	}
	logger.Debug("handler registered",
		slog.String("event_type", eventType),
		slog.String("phase", phase),
	)
}

// LogRebuild logs an invoker rebuild.
func LogRebuild(logger *slog.Logger, eventType string, handlerCount int) {
	if logger == nil {
		return
	}
	logger.Debug("invoker rebuilt",
		slog.String("event_type", eventType),
		slog.Int("handler_count", handlerCount),
	)
}

// LogCreation logs a Manager emitting a creation notification.
func LogCreation(logger *slog.Logger, eventType string) {
	if logger == nil {
		return
	}
	logger.Info("event created",
		slog.String("event_type", eventType),
	)
}

// LogListenAllFailure logs a failed ListenAll call.
func LogListenAllFailure(logger *slog.Logger, eventCount int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("listenAll failed",
		slog.Int("event_count", eventCount),
		slog.String("error", err.Error()),
	)
}
