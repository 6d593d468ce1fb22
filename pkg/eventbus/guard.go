package eventbus

import (
	"context"
	"reflect"
	"sync"
)

// guard serializes registry mutations against publishes with a
// readers-writer lock: publishes share the read lock, while registration and
// removal take the write lock.
//
// Handlers must not add or remove registrations on the same guarded bus from
// inside a publish; the write lock cannot be taken while the read lock is held.
type guard struct {
	mu sync.RWMutex
}

func (g *guard) read(fn func() error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn()
}

func (g *guard) register(fn func() (Registration, error)) (Registration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	reg, err := fn()
	if err != nil {
		return nil, err
	}
	return &guardedRegistration{guard: g, inner: reg}, nil
}

func (g *guard) count(fn func() int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn()
}

type guardedRegistration struct {
	guard *guard
	inner Registration
}

func (r *guardedRegistration) RemoveHandler() {
	r.guard.mu.Lock()
	defer r.guard.mu.Unlock()
	r.inner.RemoveHandler()
}

// SafeTyped makes a TypedBus safe for concurrent publish, add and remove.
type SafeTyped struct {
	guard
	delegate TypedBus
}

var _ TypedBus = (*SafeTyped)(nil)

// NewSafeTyped wraps delegate. A nil delegate fails with ErrInvalidArgument.
func NewSafeTyped(delegate TypedBus) (*SafeTyped, error) {
	if isNil(delegate) {
		return nil, argumentError("new safe typed", "delegate", "must not be nil")
	}
	return &SafeTyped{delegate: delegate}, nil
}

// Publish delivers n under the shared lock.
func (s *SafeTyped) Publish(n Notification) error {
	return s.PublishContext(context.Background(), n)
}

// PublishContext delivers n under the shared lock.
func (s *SafeTyped) PublishContext(ctx context.Context, n Notification) error {
	return s.read(func() error { return s.delegate.PublishContext(ctx, n) })
}

// AddHandler registers r under the exclusive lock. The returned
// Registration also removes under the exclusive lock.
func (s *SafeTyped) AddHandler(t reflect.Type, r Receiver) (Registration, error) {
	return s.register(func() (Registration, error) { return s.delegate.AddHandler(t, r) })
}

// Len returns the delegate's handler count.
func (s *SafeTyped) Len() int {
	return s.count(s.delegate.Len)
}

// SafeBroadcast makes a BroadcastBus safe for concurrent publish, add and remove.
type SafeBroadcast struct {
	guard
	delegate BroadcastBus
}

var _ BroadcastBus = (*SafeBroadcast)(nil)

// NewSafeBroadcast wraps delegate. A nil delegate fails with ErrInvalidArgument.
func NewSafeBroadcast(delegate BroadcastBus) (*SafeBroadcast, error) {
	if isNil(delegate) {
		return nil, argumentError("new safe broadcast", "delegate", "must not be nil")
	}
	return &SafeBroadcast{delegate: delegate}, nil
}

// Publish delivers n under the shared lock.
func (s *SafeBroadcast) Publish(n Notification) error {
	return s.PublishContext(context.Background(), n)
}

// PublishContext delivers n under the shared lock.
func (s *SafeBroadcast) PublishContext(ctx context.Context, n Notification) error {
	return s.read(func() error { return s.delegate.PublishContext(ctx, n) })
}

// AddHandler registers r under the exclusive lock.
func (s *SafeBroadcast) AddHandler(r Receiver) (Registration, error) {
	return s.register(func() (Registration, error) { return s.delegate.AddHandler(r) })
}

// Len returns the delegate's handler count.
func (s *SafeBroadcast) Len() int {
	return s.count(s.delegate.Len)
}
