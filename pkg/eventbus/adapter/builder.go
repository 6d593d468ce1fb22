package adapter

import (
	"github.com/randalmurphal/eventbus/pkg/eventbus"
)

// Builder assembles an Adapter from explicit (type, function) pairs instead
// of scanning the target's methods.
//
//	a, err := adapter.On(adapter.NewBuilder(svc), svc.OrderPlaced).
//	    Build()
type Builder struct {
	adapter *Adapter
	err     error
}

// NewBuilder starts an Adapter for target.
func NewBuilder(target any) *Builder {
	b := &Builder{adapter: newAdapter(target)}
	if isNil(target) {
		b.err = &eventbus.ArgumentError{Op: "adapter.Build", Arg: "target", Reason: "is required"}
	}
	return b
}

// On associates fn with notifications of exact type N. Functions registered
// for the same type run in the order they were added.
func On[N eventbus.Notification](b *Builder, fn func(N) error) *Builder {
	if b.err != nil {
		return b
	}
	t := eventbus.TypeOf[N]()
	if fn == nil {
		b.err = &eventbus.ArgumentError{Op: "adapter.Build", Arg: t.String(), Reason: "handler is required"}
		return b
	}
	b.adapter.add(t, method{
		name: t.String(),
		call: func(n eventbus.Notification) error {
			return fn(n.(N))
		},
	})
	return b
}

// Build returns the assembled Adapter, or the first error recorded by On.
// A builder with no handlers fails with eventbus.ErrInvalidArgument.
func (b *Builder) Build() (*Adapter, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.adapter.types) == 0 {
		return nil, &eventbus.ArgumentError{Op: "adapter.Build", Arg: "target", Reason: "has no event handlers"}
	}
	return b.adapter, nil
}
