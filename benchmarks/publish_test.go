package benchmarks

import (
	"testing"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
	"github.com/randalmurphal/eventbus/pkg/eventbus/adapter"
)

type (
	Hit  struct{ eventbus.Event[int] }
	Miss struct{ eventbus.Event[int] }
)

type counter struct{ n int }

func (c *counter) EventHandlers() []string { return []string{"OnHit"} }
func (c *counter) OnHit(Hit)               { c.n++ }

func subscribers(b *testing.B, bus eventbus.TypedBus, n int) {
	b.Helper()
	for range n {
		if _, err := eventbus.SubscribeFunc(bus, func(Hit) error { return nil }); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTypedRegistry_Publish measures exact-type routing with 10 handlers.
func BenchmarkTypedRegistry_Publish(b *testing.B) {
	bus := eventbus.NewTypedRegistry()
	subscribers(b, bus, 10)
	n := Hit{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(n)
	}
}

// BenchmarkTypedRegistry_PublishNoHandlers measures the unsubscribed path.
func BenchmarkTypedRegistry_PublishNoHandlers(b *testing.B) {
	bus := eventbus.NewTypedRegistry()
	subscribers(b, bus, 10)
	n := Miss{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(n)
	}
}

// BenchmarkBroadcastRegistry_Publish measures a broadcast where half of the
// handlers decline.
func BenchmarkBroadcastRegistry_Publish(b *testing.B) {
	bus := eventbus.NewBroadcastRegistry()
	for i := range 10 {
		var r eventbus.Receiver
		if i%2 == 0 {
			r = eventbus.Func(func(Hit) error { return nil })
		} else {
			r = eventbus.Func(func(Miss) error { return nil })
		}
		if _, err := bus.AddHandler(r); err != nil {
			b.Fatal(err)
		}
	}
	n := Hit{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(n)
	}
}

// BenchmarkSafeTyped_PublishParallel measures publish contention on the guard.
func BenchmarkSafeTyped_PublishParallel(b *testing.B) {
	bus, err := eventbus.NewSafeTyped(eventbus.NewTypedRegistry())
	if err != nil {
		b.Fatal(err)
	}
	subscribers(b, bus, 10)
	n := Hit{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bus.Publish(n)
		}
	})
}

// BenchmarkSafeTyped_AddRemove measures registration churn under the guard.
func BenchmarkSafeTyped_AddRemove(b *testing.B) {
	bus, err := eventbus.NewSafeTyped(eventbus.NewTypedRegistry())
	if err != nil {
		b.Fatal(err)
	}
	h := eventbus.Func(func(Hit) error { return nil })
	t := eventbus.TypeOf[Hit]()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg, _ := bus.AddHandler(t, h)
		reg.RemoveHandler()
	}
}

// BenchmarkAdapter_Receive measures reflective method invocation.
func BenchmarkAdapter_Receive(b *testing.B) {
	c := &counter{}
	a, err := adapter.New(c)
	if err != nil {
		b.Fatal(err)
	}
	n := Hit{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Receive(n)
	}
}

// BenchmarkAdapter_Builder measures the explicit (non-reflective) adapter.
func BenchmarkAdapter_Builder(b *testing.B) {
	c := &counter{}
	a, err := adapter.On(adapter.NewBuilder(c), func(Hit) error {
		c.n++
		return nil
	}).Build()
	if err != nil {
		b.Fatal(err)
	}
	n := Hit{eventbus.NewEvent(1)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Receive(n)
	}
}
