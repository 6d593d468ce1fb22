package config

import (
	"errors"
	"fmt"
)

// Kind selects the registry implementation behind a bus.
type Kind string

const (
	// KindTyped routes by exact notification type.
	KindTyped Kind = "typed"
	// KindBroadcast offers every notification to every handler.
	KindBroadcast Kind = "broadcast"
)

// BusesKey is the top-level section holding bus declarations.
const BusesKey = "buses"

var (
	// ErrNoBuses is returned when a document declares no buses.
	ErrNoBuses = errors.New("config: no buses declared")

	// ErrInvalidBusSpec is returned when a bus declaration is malformed.
	ErrInvalidBusSpec = errors.New("config: invalid bus spec")
)

// BusSpec declares one named bus.
type BusSpec struct {
	Name    string
	Kind    Kind
	Guarded bool // wrap in the concurrency guard
	Metrics bool
	Tracing bool
}

// Defaults applied to omitted fields.
const (
	DefaultKind    = KindTyped
	DefaultGuarded = true
)

// ParseBuses reads the buses section of cfg:
//
//	buses:
//	  orders:
//	    kind: typed
//	    guarded: true
//	    metrics: true
//	  audit:
//	    kind: broadcast
//	    tracing: true
//
// Specs are returned sorted by name. An empty declaration (`audit: {}` or
// `audit:`) takes the defaults.
func ParseBuses(cfg Config) ([]BusSpec, error) {
	if !cfg.IsSection(BusesKey) {
		if cfg.Has(BusesKey) && cfg.Raw()[BusesKey] != nil {
			return nil, fmt.Errorf("%w: %q must be a mapping", ErrInvalidBusSpec, BusesKey)
		}
		return nil, ErrNoBuses
	}

	buses := cfg.Section(BusesKey)
	if buses.Len() == 0 {
		return nil, ErrNoBuses
	}

	specs := make([]BusSpec, 0, buses.Len())
	for _, name := range buses.Keys() {
		spec, err := parseBus(name, buses.Raw()[name])
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseBus(name string, raw any) (BusSpec, error) {
	spec := BusSpec{Name: name, Kind: DefaultKind, Guarded: DefaultGuarded}
	if name == "" {
		return spec, fmt.Errorf("%w: bus name is empty", ErrInvalidBusSpec)
	}
	if raw == nil {
		return spec, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return spec, fmt.Errorf("%w: bus %q must be a mapping, got %T", ErrInvalidBusSpec, name, raw)
	}
	c := New(m)

	for _, key := range c.Keys() {
		switch key {
		case "kind", "guarded", "metrics", "tracing":
		default:
			return spec, fmt.Errorf("%w: bus %q: unknown field %q", ErrInvalidBusSpec, name, key)
		}
	}

	if c.Has("kind") {
		if _, ok := m["kind"].(string); !ok {
			return spec, fmt.Errorf("%w: bus %q: kind must be a string", ErrInvalidBusSpec, name)
		}
		kind := c.String("kind", string(DefaultKind))
		switch Kind(kind) {
		case KindTyped, KindBroadcast:
			spec.Kind = Kind(kind)
		default:
			return spec, fmt.Errorf("%w: bus %q: unknown kind %q", ErrInvalidBusSpec, name, kind)
		}
	}

	var err error
	if spec.Guarded, err = flag(c, name, "guarded", DefaultGuarded); err != nil {
		return spec, err
	}
	if spec.Metrics, err = flag(c, name, "metrics", false); err != nil {
		return spec, err
	}
	if spec.Tracing, err = flag(c, name, "tracing", false); err != nil {
		return spec, err
	}
	return spec, nil
}

// flag reads a boolean field, rejecting values of any other type.
func flag(c Config, bus, key string, defaultVal bool) (bool, error) {
	if !c.Has(key) {
		return defaultVal, nil
	}
	if _, ok := c.Raw()[key].(bool); !ok {
		return false, fmt.Errorf("%w: bus %q: %s must be a boolean", ErrInvalidBusSpec, bus, key)
	}
	return c.Bool(key, defaultVal), nil
}
