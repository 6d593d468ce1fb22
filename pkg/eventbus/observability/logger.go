// Package observability provides logging, metrics, and tracing for eventbus
// registries.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger scopes a logger to a named bus.
//
// Example:
//
//	enriched := EnrichLogger(logger, "orders")
//	enriched.Info("ready") // includes bus=orders
func EnrichLogger(logger *slog.Logger, bus string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("bus", bus))
}

// LogPublish logs a completed publish.
func LogPublish(logger *slog.Logger, notificationType string, delivered, declined int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("notification published",
		slog.String("notification_type", notificationType),
		slog.Int("delivered", delivered),
		slog.Int("declined", declined),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogPublishError logs a publish aborted by a handler failure.
func LogPublishError(logger *slog.Logger, notificationType string, err error, delivered int) {
	if logger == nil {
		return
	}
	logger.Error("notification publish aborted",
		slog.String("notification_type", notificationType),
		slog.String("error", err.Error()),
		slog.Int("delivered", delivered),
	)
}

// LogDeclined logs a broadcast handler skipping a foreign notification.
func LogDeclined(logger *slog.Logger, notificationType, handlerType string) {
	if logger == nil {
		return
	}
	logger.Debug("handler declined notification",
		slog.String("notification_type", notificationType),
		slog.String("handler_type", handlerType),
	)
}

// LogRegistered logs a handler registration.
func LogRegistered(logger *slog.Logger, registrationID, notificationType string, handlers int) {
	if logger == nil {
		return
	}
	logger.Debug("handler registered",
		slog.String("registration_id", registrationID),
		slog.String("notification_type", notificationType),
		slog.Int("handlers", handlers),
	)
}

// LogRemoved logs a handler removal.
func LogRemoved(logger *slog.Logger, registrationID, notificationType string, handlers int) {
	if logger == nil {
		return
	}
	logger.Debug("handler removed",
		slog.String("registration_id", registrationID),
		slog.String("notification_type", notificationType),
		slog.Int("handlers", handlers),
	)
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
