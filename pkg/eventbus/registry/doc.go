// Package registry provides a generic thread-safe map with ordered keys.
//
// It backs named collections such as the buses built from a configuration
// file:
//
//	buses := registry.New[string, *Bus]()
//	if err := buses.Add("orders", bus); err != nil {
//	    // registry.ErrDuplicateKey
//	}
//	orders := buses.MustGet("orders")
//
// Keys and Range visit entries in ascending key order. Range iterates over a
// snapshot, so the callback may add entries.
package registry
