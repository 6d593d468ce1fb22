package wiring

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
	"github.com/randalmurphal/eventbus/pkg/eventbus/config"
	"github.com/randalmurphal/eventbus/pkg/eventbus/registry"
)

var (
	// ErrUnknownBus is returned when a name was not declared.
	ErrUnknownBus = errors.New("wiring: unknown bus")

	// ErrKindMismatch is returned when a bus is requested as the wrong kind.
	ErrKindMismatch = errors.New("wiring: bus kind mismatch")
)

// Set holds the buses of one application, keyed by name.
type Set struct {
	buses *registry.Registry[string, *Bus]
}

// Build creates one bus per spec. Duplicate names fail with
// registry.ErrDuplicateKey.
func Build(specs []config.BusSpec, opts ...Option) (*Set, error) {
	if len(specs) == 0 {
		return nil, config.ErrNoBuses
	}
	o := newOptions(opts)

	s := &Set{buses: registry.New[string, *Bus]()}
	for _, spec := range specs {
		bus, err := newBus(spec, o)
		if err != nil {
			return nil, err
		}
		if err := s.buses.Add(spec.Name, bus); err != nil {
			return nil, err
		}
		if o.logger != nil {
			bus.logger.Info("bus ready",
				slog.String("kind", string(spec.Kind)),
				slog.Bool("guarded", spec.Guarded),
				slog.Bool("metrics", spec.Metrics),
				slog.Bool("tracing", spec.Tracing),
			)
		}
	}
	return s, nil
}

// FromFile loads bus declarations from a YAML or JSON file and builds them.
func FromFile(path string, opts ...Option) (*Set, error) {
	specs, err := config.LoadBuses(path)
	if err != nil {
		return nil, err
	}
	return Build(specs, opts...)
}

// Get returns the named bus.
func (s *Set) Get(name string) (*Bus, bool) {
	return s.buses.Get(name)
}

// MustGet returns the named bus, panicking if it was not declared.
func (s *Set) MustGet(name string) *Bus {
	return s.buses.MustGet(name)
}

// Names returns the bus names in sorted order.
func (s *Set) Names() []string {
	return s.buses.Keys()
}

// Len returns the number of buses.
func (s *Set) Len() int {
	return s.buses.Len()
}

// Typed returns the named bus, which must have been declared typed.
func (s *Set) Typed(name string) (eventbus.TypedBus, error) {
	bus, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	typed, ok := bus.Typed()
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s", ErrKindMismatch, name, bus.spec.Kind)
	}
	return typed, nil
}

// Broadcast returns the named bus, which must have been declared broadcast.
func (s *Set) Broadcast(name string) (eventbus.BroadcastBus, error) {
	bus, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	broadcast, ok := bus.Broadcast()
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s", ErrKindMismatch, name, bus.spec.Kind)
	}
	return broadcast, nil
}

// Close detaches every adapter attached to any bus in the set.
func (s *Set) Close() error {
	var errs []error
	s.buses.Range(func(_ string, bus *Bus) bool {
		if err := bus.Close(); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

func (s *Set) lookup(name string) (*Bus, error) {
	bus, ok := s.buses.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, name)
	}
	return bus, nil
}
