// Package adapter turns an ordinary object into an eventbus handler.
//
// # Marked Methods
//
// An object opts in by implementing Marker, naming the methods that handle
// notifications. Each named method takes exactly one parameter implementing
// eventbus.Notification and returns nothing or an error:
//
//	type Shipping struct{ ... }
//
//	func (s *Shipping) EventHandlers() []string {
//	    return []string{"OnPlaced", "OnCancelled"}
//	}
//
//	func (s *Shipping) OnPlaced(e OrderPlaced) error { ... }
//	func (s *Shipping) OnCancelled(e OrderCancelled) { ... }
//
//	a, err := adapter.New(&Shipping{})
//	reg, err := bus.AddHandler(a)
//
// New resolves the names once, against the full method set including methods
// promoted from embedded structs, and indexes them by parameter type. Receive
// calls only the methods indexed under a notification's exact runtime type.
//
// # Explicit Registration
//
// Builder associates functions with notification types without reflection:
//
//	b := adapter.NewBuilder(svc)
//	adapter.On(b, svc.OnPlaced)
//	adapter.On(b, svc.OnCancelled)
//	a, err := b.Build()
//
// # Lifecycle
//
// Registrar is the composition-root seam: Register probes an object with
// HasHandlers, adapts it, adds it to a broadcast bus and keeps the
// registration; Close removes them all at teardown. The adapted object keeps
// its own type; Adapter.Target returns it.
package adapter
