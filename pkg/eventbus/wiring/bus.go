package wiring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
	"github.com/randalmurphal/eventbus/pkg/eventbus/adapter"
	"github.com/randalmurphal/eventbus/pkg/eventbus/config"
	"github.com/randalmurphal/eventbus/pkg/eventbus/observability"
)

// Bus is one named bus built from a BusSpec. Exactly one of Typed and
// Broadcast reports ok.
type Bus struct {
	spec      config.BusSpec
	logger    *slog.Logger
	typed     eventbus.TypedBus
	broadcast eventbus.BroadcastBus
	registrar *adapter.Registrar
}

func newBus(spec config.BusSpec, o options) (*Bus, error) {
	logger := observability.EnrichLogger(o.logger, spec.Name)
	opts := []eventbus.Option{eventbus.WithLogger(logger)}
	if spec.Metrics {
		opts = append(opts, eventbus.WithMetrics(o.metrics))
	}
	if spec.Tracing {
		opts = append(opts, eventbus.WithTracing(o.spans))
	}

	b := &Bus{spec: spec, logger: logger}
	switch spec.Kind {
	case config.KindTyped:
		var bus eventbus.TypedBus = eventbus.NewTypedRegistry(opts...)
		if spec.Guarded {
			safe, err := eventbus.NewSafeTyped(bus)
			if err != nil {
				return nil, err
			}
			bus = safe
		}
		b.typed = bus

	case config.KindBroadcast:
		var bus eventbus.BroadcastBus = eventbus.NewBroadcastRegistry(opts...)
		if spec.Guarded {
			safe, err := eventbus.NewSafeBroadcast(bus)
			if err != nil {
				return nil, err
			}
			bus = safe
		}
		registrar, err := adapter.NewRegistrar(bus, logger)
		if err != nil {
			return nil, err
		}
		b.broadcast = bus
		b.registrar = registrar

	default:
		return nil, fmt.Errorf("%w: bus %q: unknown kind %q", config.ErrInvalidBusSpec, spec.Name, spec.Kind)
	}
	return b, nil
}

// Name returns the bus name.
func (b *Bus) Name() string { return b.spec.Name }

// Spec returns the declaration the bus was built from.
func (b *Bus) Spec() config.BusSpec { return b.spec }

// Typed returns the bus as a TypedBus.
func (b *Bus) Typed() (eventbus.TypedBus, bool) {
	return b.typed, b.typed != nil
}

// Broadcast returns the bus as a BroadcastBus.
func (b *Bus) Broadcast() (eventbus.BroadcastBus, bool) {
	return b.broadcast, b.broadcast != nil
}

// Publish delivers n on whichever kind of bus this is.
func (b *Bus) Publish(n eventbus.Notification) error {
	return b.PublishContext(context.Background(), n)
}

// PublishContext is Publish with a context for tracing and log scope.
func (b *Bus) PublishContext(ctx context.Context, n eventbus.Notification) error {
	if b.typed != nil {
		return b.typed.PublishContext(ctx, n)
	}
	return b.broadcast.PublishContext(ctx, n)
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	if b.typed != nil {
		return b.typed.Len()
	}
	return b.broadcast.Len()
}

// Attach adapts each target and registers it on a broadcast bus. Targets
// without handler methods are skipped. Adapters stay registered until Close.
func (b *Bus) Attach(targets ...any) error {
	if b.registrar == nil {
		return fmt.Errorf("%w: %q is %s, attach needs %s", ErrKindMismatch, b.spec.Name, b.spec.Kind, config.KindBroadcast)
	}
	for _, target := range targets {
		if _, err := b.registrar.Register(target); err != nil {
			return fmt.Errorf("bus %q: %w", b.spec.Name, err)
		}
	}
	return nil
}

// Close detaches everything added through Attach.
func (b *Bus) Close() error {
	if b.registrar == nil {
		return nil
	}
	return b.registrar.Close()
}
