// Package wiring builds the buses an application declares in configuration.
//
//	buses:
//	  orders:
//	    kind: typed
//	    metrics: true
//	  audit:
//	    kind: broadcast
//
//	set, err := wiring.FromFile("buses.yaml", wiring.WithLogger(logger))
//	orders, err := set.Typed("orders")
//	eventbus.SubscribeFunc(orders, onPlaced)
//
//	audit := set.MustGet("audit")
//	audit.Attach(&AuditLog{}) // adapter.Marker targets
//	defer set.Close()
//
// Guarded buses (the default) are wrapped with eventbus.NewSafeTyped or
// eventbus.NewSafeBroadcast. Buses declared with metrics or tracing get the
// OpenTelemetry recorder or span manager; every bus logs through a child of
// the base logger carrying its name.
package wiring
