// Package eventbus provides an in-process, synchronous publish/subscribe bus.
//
// # Overview
//
// Producers publish typed notifications without knowing their consumers.
// Consumers register interest in a notification type (or in everything) and
// receive matching notifications on the publishing goroutine before Publish
// returns. Delivery is never queued or retried.
//
//   - Notification is the message contract; Event[T] is an embeddable base.
//   - Handler[N] and HandlerFunc[N] consume notifications of type N.
//   - Receiver is the type-erased handler registries store; Typed and Func build one.
//   - Dispatch is the double-dispatch entry point every delivery goes through.
//   - TypedRegistry delivers only to handlers registered for the exact runtime type.
//   - BroadcastRegistry offers every notification to every handler; handlers
//     whose declared type does not accept it decline silently.
//   - SafeTyped and SafeBroadcast add readers-writer locking to either registry.
//
// # Typed Registry
//
//	type OrderPlaced struct {
//	    eventbus.Event[*Order]
//	}
//
//	bus := eventbus.NewTypedRegistry()
//	reg, err := eventbus.SubscribeFunc(bus, func(e OrderPlaced) error {
//	    return ship(e.Subject())
//	})
//	if err != nil {
//	    return err
//	}
//	defer reg.RemoveHandler()
//
//	err = bus.Publish(OrderPlaced{Event: eventbus.NewEvent(order)})
//
// Lookup is by exact runtime type: a handler registered for OrderPlaced never
// sees *OrderPlaced, and publishing a type nobody subscribed to is a no-op.
//
// # Broadcast Registry
//
//	bus := eventbus.NewBroadcastRegistry()
//	eventbus.SubscribeAll[OrderPlaced](bus, placedHandler)
//	eventbus.SubscribeAll[eventbus.Notification](bus, auditHandler) // sees everything
//
// # Errors
//
// Nil notifications, handlers, type keys and delegates fail with
// ErrInvalidArgument (as *ArgumentError). A handler offered a notification it
// cannot accept yields ErrInapplicableHandler (as *InapplicableError) from
// Dispatch; the broadcast registry treats that as a decline. Errors returned
// by handlers are never wrapped or suppressed: the first one stops delivery
// and is returned to the publisher.
//
// # Concurrency
//
// TypedRegistry and BroadcastRegistry are plain containers and are not safe
// for concurrent use. SafeTyped and SafeBroadcast let any number of publishes
// run in parallel while serializing every add and remove against them.
//
// # Observability
//
// WithLogger, WithMetrics and WithTracing attach slog records, OpenTelemetry
// metrics and an "eventbus.publish" span to every publish. See the
// observability subpackage.
package eventbus
