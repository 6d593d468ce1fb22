package eventbus

import (
	"context"
	"errors"
	"reflect"
	"weak"
)

// BroadcastBus offers every notification to every handler.
type BroadcastBus interface {
	Publisher

	// AddHandler registers r to be offered every published notification.
	AddHandler(r Receiver) (Registration, error)

	// Len returns the number of registered handlers.
	Len() int
}

// BroadcastRegistry keeps one flat list of handlers regardless of their
// declared type. A handler whose declared type does not accept a notification
// declines it silently and delivery continues with the next handler.
//
// BroadcastRegistry is not safe for concurrent use; wrap it with NewSafeBroadcast.
type BroadcastRegistry struct {
	handlers []*entry
	inst     instruments
}

var _ BroadcastBus = (*BroadcastRegistry)(nil)

// NewBroadcastRegistry creates an empty broadcast registry.
func NewBroadcastRegistry(opts ...Option) *BroadcastRegistry {
	return &BroadcastRegistry{inst: newInstruments(opts)}
}

// Publish offers n to every handler in registration order.
func (r *BroadcastRegistry) Publish(n Notification) error {
	return r.PublishContext(context.Background(), n)
}

// PublishContext is Publish with a context for tracing and log scope.
//
// A nil notification fails with ErrInvalidArgument before any handler runs.
// Handlers that decline are skipped; the first other handler error stops
// delivery and is returned unmodified.
func (r *BroadcastRegistry) PublishContext(ctx context.Context, n Notification) error {
	if isNil(n) {
		return argumentError("publish", "notification", "must not be nil")
	}
	t := reflect.TypeOf(n)
	return r.inst.observe(ctx, t, func(ctx context.Context, d *delivery) error {
		for _, e := range r.handlers {
			if !Accepts(e.receiver, n) {
				d.declined++
				r.inst.declined(ctx, t, e.receiver)
				continue
			}
			if err := e.receiver.Receive(n); err != nil {
				if errors.Is(err, ErrInapplicableHandler) {
					d.declined++
					r.inst.declined(ctx, t, e.receiver)
					continue
				}
				return err
			}
			d.delivered++
		}
		return nil
	})
}

// AddHandler appends recv to the handler list.
func (r *BroadcastRegistry) AddHandler(recv Receiver) (Registration, error) {
	if isNil(recv) {
		return nil, argumentError("add handler", "handler", "is required")
	}

	e := newEntry(recv)
	r.handlers = append(r.handlers, e)
	r.inst.registered(e, recv.NotificationType(), len(r.handlers))

	ref := weak.Make(r)
	return newRegistration(func() {
		if reg := ref.Value(); reg != nil {
			reg.remove(e)
		}
	}), nil
}

func (r *BroadcastRegistry) remove(e *entry) {
	list, ok := removeEntry(r.handlers, e)
	if !ok {
		return
	}
	r.handlers = list
	r.inst.removed(e, e.receiver.NotificationType(), len(list))
}

// Len returns the number of registered handlers.
func (r *BroadcastRegistry) Len() int {
	return len(r.handlers)
}

// SubscribeAll registers h on bus; h only sees notifications assignable to N.
func SubscribeAll[N Notification](bus BroadcastBus, h Handler[N]) (Registration, error) {
	if isNil(bus) {
		return nil, argumentError("subscribe", "bus", "is required")
	}
	return bus.AddHandler(Typed(h))
}
