package eventbus_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
)

func TestNewEvent(t *testing.T) {
	order := &struct{ ID int }{ID: 7}
	e1 := eventbus.NewEvent(order)
	e2 := eventbus.NewEvent(order)

	assert.NotEmpty(t, e1.ID())
	assert.NotEqual(t, e1.ID(), e2.ID())
	assert.Same(t, order, e1.Subject())
	assert.Equal(t, order, e1.Source())
	assert.False(t, e1.OccurredAt().IsZero())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(A{}), eventbus.TypeOf[A]())
	assert.Equal(t, reflect.Interface, eventbus.TypeOf[eventbus.Notification]().Kind())
}

func TestTypedAndFunc_Nil(t *testing.T) {
	assert.Nil(t, eventbus.Typed[A](nil))
	assert.Nil(t, eventbus.Func[A](nil))

	var rec *recorder[A]
	assert.Nil(t, eventbus.Typed[A](rec), "typed nil handler")
}

func TestAccepts(t *testing.T) {
	forA := eventbus.Func(func(A) error { return nil })
	forAll := eventbus.Func(func(eventbus.Notification) error { return nil })

	assert.True(t, eventbus.Accepts(forA, newA()))
	assert.False(t, eventbus.Accepts(forA, newB()))
	assert.True(t, eventbus.Accepts(forAll, newB()))
	assert.False(t, eventbus.Accepts(nil, newA()))
	assert.False(t, eventbus.Accepts(forA, nil))
}

func TestDispatch(t *testing.T) {
	t.Run("invokes matching handler", func(t *testing.T) {
		rec := &recorder[A]{}
		a := newA()

		require.NoError(t, eventbus.Dispatch(a, eventbus.Typed[A](rec)))
		require.Len(t, rec.seen, 1)
		assert.Equal(t, a, rec.seen[0])
	})

	t.Run("returns handler error unmodified", func(t *testing.T) {
		boom := errors.New("boom")
		err := eventbus.Dispatch(newA(), eventbus.Func(func(A) error { return boom }))
		assert.Same(t, boom, err)
	})

	t.Run("mismatch is inapplicable and handler not invoked", func(t *testing.T) {
		rec := &recorder[A]{}
		err := eventbus.Dispatch(newB(), eventbus.Typed[A](rec))

		require.ErrorIs(t, err, eventbus.ErrInapplicableHandler)
		var inapplicable *eventbus.InapplicableError
		require.ErrorAs(t, err, &inapplicable)
		assert.Equal(t, eventbus.TypeOf[B](), inapplicable.Notification)
		assert.Equal(t, eventbus.TypeOf[A](), inapplicable.Handler)
		assert.Zero(t, rec.count())
	})

	t.Run("nil arguments", func(t *testing.T) {
		err := eventbus.Dispatch(nil, eventbus.Func(func(A) error { return nil }))
		assert.ErrorIs(t, err, eventbus.ErrInvalidArgument)

		err = eventbus.Dispatch(newA(), nil)
		assert.ErrorIs(t, err, eventbus.ErrInvalidArgument)

		var argErr *eventbus.ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "handler", argErr.Arg)
	})
}
