/*
Package config loads bus declarations from YAML or JSON.

# Bus Declarations

A document names each bus under the top-level "buses" mapping:

	buses:
	  orders:
	    kind: typed      # typed (default) or broadcast
	    guarded: true    # wrap in the concurrency guard (default true)
	    metrics: true    # record OpenTelemetry metrics (default false)
	  audit:
	    kind: broadcast
	    tracing: true    # emit a span per publish (default false)

ParseBuses validates the section and returns one BusSpec per bus, sorted by
name. Unknown fields, unknown kinds and non-boolean flags fail with
ErrInvalidBusSpec; a document without buses fails with ErrNoBuses.

	specs, err := config.LoadBuses("buses.yaml")

# Accessors

Config wraps the decoded document. String and Bool fall back to a default
when a key is missing or holds another type; Section descends into a nested
mapping.

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
