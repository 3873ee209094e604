package messaging

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

var _ shared.EventBus = (*InMemoryEventBus)(nil)

func stateChanged() shared.Event {
	return tutorspet.NewStateChangedEvent(tutorspet.ReasonCommit, "add", tutorspet.New())
}

func TestInMemoryEventBus_SyncDeliveryOrder(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	var calls []string

	require.NoError(t, bus.Subscribe(shared.EventStateChanged, func(shared.Event) error {
		calls = append(calls, "first")
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventStorageSaved, func(shared.Event) error {
		calls = append(calls, "other type")
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		calls = append(calls, "all")
		return nil
	}))

	require.NoError(t, bus.Publish(stateChanged()))
	assert.Equal(t, []string{"first", "all"}, calls)
}

func TestInMemoryEventBus_SyncErrorsAreReturned(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	boom := errors.New("disk full")
	var ran atomic.Int32

	require.NoError(t, bus.Subscribe(shared.EventStateChanged, func(shared.Event) error { return boom }))
	require.NoError(t, bus.Subscribe(shared.EventStateChanged, func(shared.Event) error { panic("bad handler") }))
	require.NoError(t, bus.Subscribe(shared.EventStateChanged, func(shared.Event) error {
		ran.Add(1)
		return nil
	}))

	err := bus.Publish(stateChanged())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.Equal(t, int32(1), ran.Load(), "later handlers still run")

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(3), snap.TotalHandlerExecs)
	assert.Equal(t, int64(2), snap.HandlerFailures)
}

func TestInMemoryEventBus_NestedPublishRunsBeforeReturn(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	var calls []string

	require.NoError(t, bus.Subscribe(shared.EventStateChanged, func(shared.Event) error {
		calls = append(calls, "state changed")
		return bus.Publish(tutorspet.NewStorageSavedEvent(false))
	}))
	require.NoError(t, bus.Subscribe(shared.EventStorageSaved, func(shared.Event) error {
		calls = append(calls, "storage saved")
		return nil
	}))

	require.NoError(t, bus.Publish(stateChanged()))
	calls = append(calls, "returned")
	assert.Equal(t, []string{"state changed", "storage saved", "returned"}, calls)
}

func TestInMemoryEventBus_Closed(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(stateChanged()), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Publish(nil), shared.ErrNullArgument)
}
