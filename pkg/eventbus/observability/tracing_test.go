package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider with an in-memory exporter.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	originalTracer := tracer
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("eventbus")

	t.Cleanup(func() {
		otel.SetTracerProvider(originalProvider)
		tracer = originalTracer
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})
	return exporter, tp
}

func TestStartPublishSpan(t *testing.T) {
	exporter, _ := setupTracingTest(t)

	_, span := StartPublishSpan(context.Background(), "main.OrderPlaced")
	require.NotNil(t, span)
	EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "eventbus.publish", s.Name)
	assert.Contains(t, s.Attributes, attribute.String("notification.type", "main.OrderPlaced"))
	assert.Equal(t, codes.Ok, s.Status.Code)
}

func TestEndSpanWithError(t *testing.T) {
	exporter, _ := setupTracingTest(t)

	_, span := StartPublishSpan(context.Background(), "main.A")
	EndSpanWithError(span, errors.New("handler failed"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "handler failed", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() { EndSpanWithError(nil, nil) })
}

func TestAddSpanEvent(t *testing.T) {
	exporter, _ := setupTracingTest(t)

	ctx, span := StartPublishSpan(context.Background(), "main.B")
	AddSpanEvent(ctx, "handler.declined", attribute.String("handler.type", "main.A"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "handler.declined", spans[0].Events[0].Name)

	// No recording span in context: silently ignored.
	assert.NotPanics(t, func() { AddSpanEvent(context.Background(), "orphan") })
}

func TestNewSpanManagerWithTracer(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	sm := NewSpanManagerWithTracer(tp.Tracer("test"))
	ctx, span := sm.StartPublishSpan(context.Background(), "main.A")
	sm.AddSpanEvent(ctx, "checkpoint")
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "eventbus.publish", spans[0].Name)
	assert.Len(t, spans[0].Events, 1)
}
