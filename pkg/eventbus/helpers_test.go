package eventbus_test

import (
	"sync"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
)

// Three unrelated notification types.
type (
	A struct{ eventbus.Event[string] }
	B struct{ eventbus.Event[string] }
	C struct{ eventbus.Event[string] }
)

func newA() A { return A{eventbus.NewEvent("a")} }
func newB() B { return B{eventbus.NewEvent("b")} }
func newC() C { return C{eventbus.NewEvent("c")} }

// recorder collects the notifications a handler observed.
type recorder[N eventbus.Notification] struct {
	mu   sync.Mutex
	seen []N
	err  error
}

func (r *recorder[N]) Handle(n N) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
	return r.err
}

func (r *recorder[N]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
