package eventbus

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Notification is an immutable value describing something that happened.
// Notifications are routed by their exact runtime type.
type Notification interface {
	// Source returns the object whose state change is being reported.
	Source() any
}

// Event is an embeddable Notification carrying a typed source.
//
//	type OrderPlaced struct {
//	    eventbus.Event[*Order]
//	}
//
//	bus.Publish(OrderPlaced{Event: eventbus.NewEvent(order)})
type Event[T any] struct {
	id         string
	source     T
	occurredAt time.Time
}

// NewEvent creates an Event for source with a fresh ID and the current time.
func NewEvent[T any](source T) Event[T] {
	return Event[T]{
		id:         uuid.NewString(),
		source:     source,
		occurredAt: time.Now(),
	}
}

// ID returns the unique event identifier.
func (e Event[T]) ID() string {
	return e.id
}

// Source returns the event source as an untyped value.
func (e Event[T]) Source() any {
	return e.source
}

// Subject returns the strongly-typed event source.
func (e Event[T]) Subject() T {
	return e.source
}

// OccurredAt returns when the event was created.
func (e Event[T]) OccurredAt() time.Time {
	return e.occurredAt
}

// Handler receives notifications of type N.
type Handler[N Notification] interface {
	Handle(n N) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[N Notification] func(n N) error

// Handle implements Handler.
func (f HandlerFunc[N]) Handle(n N) error {
	return f(n)
}

// Receiver is the type-erased handler stored by registries.
//
// NotificationType is the declared type the receiver accepts. A notification is
// applicable when its runtime type is assignable to that type, so a receiver
// declared for an interface accepts every notification implementing it.
type Receiver interface {
	NotificationType() reflect.Type
	Receive(n Notification) error
}

// Typed wraps h as a Receiver declared for N. A nil h yields a nil Receiver.
func Typed[N Notification](h Handler[N]) Receiver {
	if isNil(h) {
		return nil
	}
	return typedReceiver[N]{handler: h}
}

// Func wraps fn as a Receiver declared for N. A nil fn yields a nil Receiver.
func Func[N Notification](fn func(N) error) Receiver {
	if fn == nil {
		return nil
	}
	return typedReceiver[N]{handler: HandlerFunc[N](fn)}
}

type typedReceiver[N Notification] struct {
	handler Handler[N]
}

func (r typedReceiver[N]) NotificationType() reflect.Type {
	return TypeOf[N]()
}

func (r typedReceiver[N]) Receive(n Notification) error {
	v, ok := n.(N)
	if !ok {
		return &InapplicableError{Notification: reflect.TypeOf(n), Handler: TypeOf[N]()}
	}
	return r.handler.Handle(v)
}

// TypeOf returns the type key for notifications of type N.
func TypeOf[N any]() reflect.Type {
	return reflect.TypeFor[N]()
}

// Accepts reports whether r's declared type accepts n's runtime type.
func Accepts(r Receiver, n Notification) bool {
	if isNil(r) || isNil(n) {
		return false
	}
	declared := r.NotificationType()
	return declared != nil && reflect.TypeOf(n).AssignableTo(declared)
}

// Dispatch routes n to r. It is the double-dispatch entry point every
// registry goes through.
//
// A nil handler or notification fails with ErrInvalidArgument. A handler whose
// declared type does not accept n is never invoked; Dispatch returns an
// *InapplicableError instead. Otherwise the handler's own error is returned
// unmodified.
func Dispatch(n Notification, r Receiver) error {
	if isNil(r) {
		return argumentError("dispatch", "handler", "is required")
	}
	if isNil(n) {
		return argumentError("dispatch", "notification", "must not be nil")
	}
	if !Accepts(r, n) {
		return &InapplicableError{Notification: reflect.TypeOf(n), Handler: r.NotificationType()}
	}
	return r.Receive(n)
}

// isNil reports whether v is nil or a typed nil reference.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

var notificationType = TypeOf[Notification]()

// typeName returns a stable label for logs and metrics.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
