package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records bus metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordPublish records one publish call with its delivery outcome.
	RecordPublish(ctx context.Context, notificationType string, delivered, declined int, duration time.Duration, err error)

	// RecordHandlers records a change in the number of registered handlers.
	RecordHandlers(ctx context.Context, notificationType string, delta int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	publishes      metric.Int64Counter
	publishLatency metric.Float64Histogram
	publishErrors  metric.Int64Counter
	deliveries     metric.Int64Counter
	declines       metric.Int64Counter
	handlers       metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.Meter("eventbus"))
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	publishes, err := meter.Int64Counter("eventbus.publish.count",
		metric.WithDescription("Number of publish calls"),
	)
	if err != nil {
		return nil, err
	}

	publishLatency, err := meter.Float64Histogram("eventbus.publish.latency_ms",
		metric.WithDescription("Publish latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	publishErrors, err := meter.Int64Counter("eventbus.publish.errors",
		metric.WithDescription("Number of publish calls aborted by a handler failure"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("eventbus.deliveries",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	declines, err := meter.Int64Counter("eventbus.declines",
		metric.WithDescription("Number of broadcast handlers that declined a notification"),
	)
	if err != nil {
		return nil, err
	}

	handlers, err := meter.Int64UpDownCounter("eventbus.handlers",
		metric.WithDescription("Number of registered handlers"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		publishes:      publishes,
		publishLatency: publishLatency,
		publishErrors:  publishErrors,
		deliveries:     deliveries,
		declines:       declines,
		handlers:       handlers,
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

// NewMetricsRecorderWithMeter returns a MetricsRecorder bound to meter
// instead of the global provider.
func NewMetricsRecorderWithMeter(meter metric.Meter) (MetricsRecorder, error) {
	return newOtelMetrics(meter)
}

// RecordPublish records a publish call.
func (m *otelMetrics) RecordPublish(ctx context.Context, notificationType string, delivered, declined int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("notification_type", notificationType))

	m.publishes.Add(ctx, 1, attrs)
	m.publishLatency.Record(ctx, Milliseconds(duration), attrs)
	if delivered > 0 {
		m.deliveries.Add(ctx, int64(delivered), attrs)
	}
	if declined > 0 {
		m.declines.Add(ctx, int64(declined), attrs)
	}
	if err != nil {
		m.publishErrors.Add(ctx, 1, attrs)
	}
}

// RecordHandlers records a registration (+1) or removal (-1).
func (m *otelMetrics) RecordHandlers(ctx context.Context, notificationType string, delta int64) {
	m.handlers.Add(ctx, delta, metric.WithAttributes(attribute.String("notification_type", notificationType)))
}
