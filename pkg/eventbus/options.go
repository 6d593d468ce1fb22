package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventbus/pkg/eventbus/observability"
)

// Option configures a registry.
type Option func(*instruments)

// WithLogger sets the logger used for publish and registration records.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(in *instruments) {
		in.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Nil is ignored.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(in *instruments) {
		if m != nil {
			in.metrics = m
		}
	}
}

// WithTracing sets the span manager. Nil is ignored.
// Default: observability.NoopSpanManager.
func WithTracing(s observability.SpanManager) Option {
	return func(in *instruments) {
		if s != nil {
			in.spans = s
		}
	}
}

// instruments bundles the observability hooks shared by both registries.
type instruments struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func newInstruments(opts []Option) instruments {
	in := instruments{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// delivery tallies the outcome of one publish.
type delivery struct {
	delivered int
	declined  int
}

// errHandlerPanicked is recorded when a handler panics mid-publish. The panic
// itself keeps propagating to the publisher.
var errHandlerPanicked = errors.New("handler panicked")

// observe wraps one publish with a span, a metric sample and a log record.
// The span is ended and the sample recorded even if a handler panics.
func (in *instruments) observe(ctx context.Context, t reflect.Type, deliver func(ctx context.Context, d *delivery) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := typeName(t)
	ctx, span := in.spans.StartPublishSpan(ctx, name)
	start := time.Now()

	var d delivery
	finished := false
	defer func() {
		recorded := err
		if !finished {
			recorded = errHandlerPanicked
		}
		elapsed := time.Since(start)

		in.metrics.RecordPublish(ctx, name, d.delivered, d.declined, elapsed, recorded)
		if recorded != nil {
			observability.LogPublishError(in.logger, name, recorded, d.delivered)
		} else {
			observability.LogPublish(in.logger, name, d.delivered, d.declined, observability.Milliseconds(elapsed))
		}
		in.spans.EndSpanWithError(span, recorded)
	}()

	err = deliver(ctx, &d)
	finished = true
	return err
}

func (in *instruments) declined(ctx context.Context, t reflect.Type, r Receiver) {
	handler := typeName(r.NotificationType())
	observability.LogDeclined(in.logger, typeName(t), handler)
	in.spans.AddSpanEvent(ctx, "handler.declined", attribute.String("handler.type", handler))
}

func (in *instruments) registered(e *entry, key reflect.Type, size int) {
	name := typeName(key)
	in.metrics.RecordHandlers(context.Background(), name, 1)
	observability.LogRegistered(in.logger, e.id, name, size)
}

func (in *instruments) removed(e *entry, key reflect.Type, size int) {
	name := typeName(key)
	in.metrics.RecordHandlers(context.Background(), name, -1)
	observability.LogRemoved(in.logger, e.id, name, size)
}
