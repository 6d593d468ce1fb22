package adapter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
)

// Registrar attaches adapted objects to a broadcast bus and detaches all of
// them on Close. It is the seam a composition root uses at startup and
// teardown.
type Registrar struct {
	bus    eventbus.BroadcastBus
	logger *slog.Logger

	mu     sync.Mutex
	regs   []eventbus.Registration
	closed bool
}

// NewRegistrar creates a Registrar for bus. logger may be nil.
func NewRegistrar(bus eventbus.BroadcastBus, logger *slog.Logger) (*Registrar, error) {
	if bus == nil {
		return nil, &eventbus.ArgumentError{Op: "adapter.NewRegistrar", Arg: "bus", Reason: "is required"}
	}
	return &Registrar{bus: bus, logger: logger}, nil
}

// Register adapts target and adds the adapter to the bus.
// Targets without handler methods are skipped and return (nil, nil).
func (r *Registrar) Register(target any) (*Adapter, error) {
	if !HasHandlers(target) {
		return nil, nil
	}
	a, err := New(target)
	if err != nil {
		return nil, err
	}
	return a, r.Attach(a)
}

// Attach adds an already built adapter to the bus.
func (r *Registrar) Attach(a *Adapter) error {
	if a == nil {
		return &eventbus.ArgumentError{Op: "adapter.Attach", Arg: "adapter", Reason: "is required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRegistrarClosed
	}

	reg, err := r.bus.AddHandler(a)
	if err != nil {
		return fmt.Errorf("attach %T: %w", a.Target(), err)
	}
	r.regs = append(r.regs, reg)

	if r.logger != nil {
		r.logger.Debug("event handler attached",
			slog.String("target", fmt.Sprintf("%T", a.Target())),
			slog.Int("notification_types", len(a.types)),
		)
	}
	return nil
}

// Len returns the number of attached adapters.
func (r *Registrar) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

// Close removes every attached adapter from the bus. It is idempotent.
func (r *Registrar) Close() error {
	r.mu.Lock()
	regs := r.regs
	r.regs = nil
	r.closed = true
	r.mu.Unlock()

	for _, reg := range regs {
		reg.RemoveHandler()
	}
	if r.logger != nil && len(regs) > 0 {
		r.logger.Debug("event handlers detached", slog.Int("count", len(regs)))
	}
	return nil
}
