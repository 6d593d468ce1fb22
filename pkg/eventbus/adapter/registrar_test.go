package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventbus/pkg/eventbus"
	"github.com/randalmurphal/eventbus/pkg/eventbus/adapter"
)

func TestRegistrar(t *testing.T) {
	bus := eventbus.NewBroadcastRegistry()
	r, err := adapter.NewRegistrar(bus, nil)
	require.NoError(t, err)

	l := &listener{}
	a, err := r.Register(l)
	require.NoError(t, err)
	require.NotNil(t, a)

	skipped, err := r.Register(notAMarker{})
	require.NoError(t, err)
	assert.Nil(t, skipped, "objects without handlers are skipped")

	skipped, err = r.Register((*listener)(nil))
	require.NoError(t, err)
	assert.Nil(t, skipped, "typed nil is skipped")

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, bus.Len())

	require.NoError(t, bus.Publish(newA()))
	assert.Equal(t, 1, l.a)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Zero(t, bus.Len())
	assert.Zero(t, r.Len())

	require.NoError(t, bus.Publish(newA()))
	assert.Equal(t, 1, l.a)

	_, err = r.Register(&listener{})
	assert.ErrorIs(t, err, adapter.ErrRegistrarClosed)
}

func TestRegistrar_Errors(t *testing.T) {
	_, err := adapter.NewRegistrar(nil, nil)
	assert.ErrorIs(t, err, eventbus.ErrInvalidArgument)

	r, err := adapter.NewRegistrar(eventbus.NewBroadcastRegistry(), nil)
	require.NoError(t, err)

	_, err = r.Register(badReturn{})
	assert.ErrorIs(t, err, eventbus.ErrInvalidArgument)
	assert.ErrorIs(t, r.Attach(nil), eventbus.ErrInvalidArgument)
	assert.Zero(t, r.Len())
}
