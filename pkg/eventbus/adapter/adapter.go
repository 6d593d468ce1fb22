package adapter

import (
	"reflect"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
)

// Marker is implemented by objects whose methods handle notifications.
// EventHandlers names those methods; each must take exactly one parameter
// implementing eventbus.Notification and return nothing or a single error.
type Marker interface {
	EventHandlers() []string
}

var (
	notificationType = eventbus.TypeOf[eventbus.Notification]()
	errorType        = eventbus.TypeOf[error]()
)

// method is one handler method bound to its target.
type method struct {
	name string
	call func(n eventbus.Notification) error
}

// Adapter exposes an object's handler methods as a single eventbus.Receiver.
// The method table is built once and never rescanned.
type Adapter struct {
	target  any
	methods map[reflect.Type][]method
	types   []reflect.Type // first-seen order
}

var _ eventbus.Receiver = (*Adapter)(nil)

// New scans target for the methods named by its Marker implementation.
//
// Methods promoted from embedded types are found as well. A marked method
// with the wrong shape fails with eventbus.ErrInvalidArgument ("ambiguous
// event handler"), as does a target with no marked methods at all.
func New(target any) (*Adapter, error) {
	if isNil(target) {
		return nil, &eventbus.ArgumentError{Op: "adapter.New", Arg: "target", Reason: "is required"}
	}
	marker, ok := target.(Marker)
	if !ok {
		return nil, &eventbus.ArgumentError{Op: "adapter.New", Arg: "target", Reason: "does not declare event handlers"}
	}

	a := newAdapter(target)
	v := reflect.ValueOf(target)
	for _, name := range marker.EventHandlers() {
		m := v.MethodByName(name)
		if !m.IsValid() {
			return nil, &eventbus.ArgumentError{Op: "adapter.New", Arg: name, Reason: "is not a method of " + v.Type().String()}
		}
		param, returnsErr, err := inspect(name, m.Type())
		if err != nil {
			return nil, err
		}
		a.add(param, method{name: name, call: bind(m, returnsErr)})
	}

	if len(a.types) == 0 {
		return nil, &eventbus.ArgumentError{Op: "adapter.New", Arg: "target", Reason: "has no event handlers"}
	}
	return a, nil
}

// HasHandlers reports whether target declares at least one handler method.
// It does not validate method shapes; New does.
func HasHandlers(target any) bool {
	if isNil(target) {
		return false
	}
	marker, ok := target.(Marker)
	return ok && len(marker.EventHandlers()) > 0
}

// inspect validates a handler method signature and returns its parameter type.
func inspect(name string, mt reflect.Type) (reflect.Type, bool, error) {
	ambiguous := func(reason string) error {
		return &eventbus.ArgumentError{Op: "adapter.New", Arg: name, Reason: "ambiguous event handler: " + reason}
	}

	if mt.IsVariadic() || mt.NumIn() != 1 {
		return nil, false, ambiguous("must take exactly one parameter")
	}
	param := mt.In(0)
	if !param.Implements(notificationType) {
		return nil, false, ambiguous(param.String() + " does not implement Notification")
	}

	switch {
	case mt.NumOut() == 0:
		return param, false, nil
	case mt.NumOut() == 1 && mt.Out(0) == errorType:
		return param, true, nil
	default:
		return nil, false, ambiguous("must return nothing or error")
	}
}

func bind(m reflect.Value, returnsErr bool) func(eventbus.Notification) error {
	return func(n eventbus.Notification) error {
		out := m.Call([]reflect.Value{reflect.ValueOf(n)})
		if !returnsErr {
			return nil
		}
		if err, _ := out[0].Interface().(error); err != nil {
			return err
		}
		return nil
	}
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

func newAdapter(target any) *Adapter {
	return &Adapter{
		target:  target,
		methods: make(map[reflect.Type][]method),
	}
}

func (a *Adapter) add(t reflect.Type, m method) {
	if _, seen := a.methods[t]; !seen {
		a.types = append(a.types, t)
	}
	a.methods[t] = append(a.methods[t], m)
}

// NotificationType returns the Notification interface type: an adapter is
// offered everything and filters by exact type itself.
func (a *Adapter) NotificationType() reflect.Type {
	return notificationType
}

// Receive invokes, in order, every method indexed under n's exact runtime
// type. Nil notifications and types without methods are ignored. The first
// method error is returned unmodified and the remaining methods are skipped.
func (a *Adapter) Receive(n eventbus.Notification) error {
	if isNil(n) {
		return nil
	}
	for _, m := range a.methods[reflect.TypeOf(n)] {
		if err := m.call(n); err != nil {
			return err
		}
	}
	return nil
}

// Target returns the adapted object.
func (a *Adapter) Target() any {
	return a.target
}

// Handles returns the notification types the adapter has methods for, in
// discovery order.
func (a *Adapter) Handles() []reflect.Type {
	return append([]reflect.Type(nil), a.types...)
}

// Methods returns the handler names registered for t, in invocation order.
func (a *Adapter) Methods(t reflect.Type) []string {
	names := make([]string, 0, len(a.methods[t]))
	for _, m := range a.methods[t] {
		names = append(names, m.name)
	}
	return names
}
