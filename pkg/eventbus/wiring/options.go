package wiring

import (
	"log/slog"

	"github.com/randalmurphal/eventbus/pkg/eventbus/observability"
)

// Option configures Build.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// WithLogger sets the base logger. Each bus logs through a child carrying
// its name. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsRecorder sets the recorder used by buses declared with
// metrics enabled. Default: observability.NewMetricsRecorder().
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSpanManager sets the span manager used by buses declared with tracing
// enabled. Default: observability.NewSpanManager().
func WithSpanManager(s observability.SpanManager) Option {
	return func(o *options) {
		o.spans = s
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = observability.NewMetricsRecorder()
	}
	if o.spans == nil {
		o.spans = observability.NewSpanManager()
	}
	return o
}
