package eventbus

import (
	"context"
	"reflect"
	"weak"
)

// Publisher is the publishing half of every bus.
type Publisher interface {
	// Publish delivers n synchronously to every applicable handler.
	Publish(n Notification) error

	// PublishContext is Publish with a context for tracing and log scope.
	// The context does not cancel delivery.
	PublishContext(ctx context.Context, n Notification) error
}

// TypedBus delivers notifications to handlers registered for their exact type.
type TypedBus interface {
	Publisher

	// AddHandler registers r for notifications whose runtime type is t.
	AddHandler(t reflect.Type, r Receiver) (Registration, error)

	// Len returns the number of registered handlers across all types.
	Len() int
}

// TypedRegistry maps each notification type to the handlers registered for
// exactly that type. Supertypes are never consulted.
//
// TypedRegistry is not safe for concurrent use; wrap it with NewSafeTyped.
// A handler may add or remove registrations while a publish is in flight on
// the same goroutine; the in-flight publish keeps the handler list it started with.
type TypedRegistry struct {
	handlers map[reflect.Type][]*entry
	inst     instruments
}

var _ TypedBus = (*TypedRegistry)(nil)

// NewTypedRegistry creates an empty typed registry.
func NewTypedRegistry(opts ...Option) *TypedRegistry {
	return &TypedRegistry{
		handlers: make(map[reflect.Type][]*entry),
		inst:     newInstruments(opts),
	}
}

// Publish delivers n to the handlers registered for its exact runtime type,
// in registration order. Publishing a type nobody subscribed to is a no-op.
// The first handler error stops delivery and is returned unmodified.
func (r *TypedRegistry) Publish(n Notification) error {
	return r.PublishContext(context.Background(), n)
}

// PublishContext is Publish with a context for tracing and log scope.
func (r *TypedRegistry) PublishContext(ctx context.Context, n Notification) error {
	if isNil(n) {
		return argumentError("publish", "notification", "must not be nil")
	}
	t := reflect.TypeOf(n)
	return r.inst.observe(ctx, t, func(_ context.Context, d *delivery) error {
		for _, e := range r.handlers[t] {
			if err := Dispatch(n, e.receiver); err != nil {
				return err
			}
			d.delivered++
		}
		return nil
	})
}

// AddHandler registers recv for notifications of exactly type t.
//
// t must implement Notification and recv's declared type must accept t;
// otherwise ErrInvalidArgument is returned and the registry is unchanged.
func (r *TypedRegistry) AddHandler(t reflect.Type, recv Receiver) (Registration, error) {
	if t == nil {
		return nil, argumentError("add handler", "notification type", "is required")
	}
	if isNil(recv) {
		return nil, argumentError("add handler", "handler", "is required")
	}
	if !t.Implements(notificationType) {
		return nil, argumentError("add handler", "notification type", t.String()+" does not implement Notification")
	}
	if declared := recv.NotificationType(); declared == nil || !t.AssignableTo(declared) {
		return nil, argumentError("add handler", "handler", "declared for "+typeName(declared)+" cannot receive "+t.String())
	}

	e := newEntry(recv)
	r.handlers[t] = append(r.handlers[t], e)
	r.inst.registered(e, t, len(r.handlers[t]))

	ref := weak.Make(r)
	return newRegistration(func() {
		if reg := ref.Value(); reg != nil {
			reg.remove(t, e)
		}
	}), nil
}

func (r *TypedRegistry) remove(t reflect.Type, e *entry) {
	list, ok := removeEntry(r.handlers[t], e)
	if !ok {
		return
	}
	if len(list) == 0 {
		delete(r.handlers, t)
	} else {
		r.handlers[t] = list
	}
	r.inst.removed(e, t, len(list))
}

// Len returns the number of registered handlers across all types.
func (r *TypedRegistry) Len() int {
	total := 0
	for _, list := range r.handlers {
		total += len(list)
	}
	return total
}

// HandlerCount returns the number of handlers registered for t.
func (r *TypedRegistry) HandlerCount(t reflect.Type) int {
	return len(r.handlers[t])
}

// Types returns the notification types that currently have handlers.
// The order is not guaranteed.
func (r *TypedRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	return types
}

// Subscribe registers h on bus for notifications of type N.
func Subscribe[N Notification](bus TypedBus, h Handler[N]) (Registration, error) {
	if isNil(bus) {
		return nil, argumentError("subscribe", "bus", "is required")
	}
	return bus.AddHandler(TypeOf[N](), Typed(h))
}

// SubscribeFunc registers fn on bus for notifications of type N.
func SubscribeFunc[N Notification](bus TypedBus, fn func(N) error) (Registration, error) {
	if isNil(bus) {
		return nil, argumentError("subscribe", "bus", "is required")
	}
	return bus.AddHandler(TypeOf[N](), Func(fn))
}
