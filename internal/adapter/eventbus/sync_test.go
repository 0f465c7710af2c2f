package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
	"github.com/tejashwikalptaru/wavescope/internal/testutil"
)

func TestSyncEventBus_DeliversToTypeSubscribers(t *testing.T) {
	bus := NewSyncEventBus(logger.NewTestLogger())
	defer bus.Close()

	var got []domain.Event
	id := bus.Subscribe(domain.EventModeChanged, func(e domain.Event) { got = append(got, e) })
	require.NotEmpty(t, id)

	bus.Publish(domain.NewModeChangedEvent(domain.ModeBars, domain.ModeWave))
	bus.Publish(domain.NewSurfaceResizedEvent(10, 10))

	require.Len(t, got, 1)
	changed := got[0].(domain.ModeChangedEvent)
	assert.Equal(t, domain.ModeBars, changed.Previous)
	assert.Equal(t, domain.ModeWave, changed.Current)
}

func TestSyncEventBus_OrderTypeThenWildcard(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventVisualizerStarted, func(domain.Event) { order = append(order, "first") })
	bus.Subscribe(domain.EventVisualizerStarted, func(domain.Event) { order = append(order, "second") })

	bus.Publish(domain.NewVisualizerStartedEvent("s", domain.ModeRadial))

	assert.Equal(t, []string{"first", "second", "all"}, order)
}

func TestSyncEventBus_Unsubscribe(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var a, b int
	idA := bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) { a++ })
	bus.Subscribe(domain.EventFrameSkipped, func(domain.Event) { b++ })

	bus.Unsubscribe(idA)
	bus.Unsubscribe("unknown")
	bus.Publish(domain.NewFrameSkippedEvent(domain.ErrSurfaceUnavailable))

	assert.Zero(t, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, bus.SubscriberCount())
}

func TestSyncEventBus_HasSubscribers(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	assert.False(t, bus.HasSubscribers(domain.EventTrackLoaded))

	id := bus.Subscribe(domain.EventTrackLoaded, func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventTrackLoaded))
	assert.False(t, bus.HasSubscribers(domain.EventTrackError))

	bus.Unsubscribe(id)
	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventTrackError))
}

func TestSyncEventBus_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	bus := NewSyncEventBus(logger.NewTestLogger())
	defer bus.Close()

	called := false
	bus.Subscribe(domain.EventTrackError, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventTrackError, func(domain.Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewTrackErrorEvent("x.mp3", domain.ErrUnsupportedFormat))
	})
	assert.True(t, called)
}

func TestSyncEventBus_NilEventAndHandler(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	assert.NotPanics(t, func() { bus.Publish(nil) })
	assert.Panics(t, func() { bus.Subscribe(domain.EventTrackLoaded, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

func TestSyncEventBus_Close(t *testing.T) {
	bus := NewSyncEventBus(nil)

	called := false
	bus.SubscribeAll(func(domain.Event) { called = true })

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Close(), ErrClosed)

	bus.Publish(domain.NewSurfaceResizedEvent(1, 1))
	assert.False(t, called)
	assert.Zero(t, bus.SubscriberCount())
	assert.Panics(t, func() { bus.Subscribe(domain.EventTrackLoaded, func(domain.Event) {}) })
}

func TestSyncEventBus_HandlerMaySubscribe(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	bus.Subscribe(domain.EventVisualizerStarted, func(domain.Event) {
		bus.Subscribe(domain.EventVisualizerStopped, func(domain.Event) {})
	})

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewVisualizerStartedEvent("s", domain.ModeBars))
	})
	assert.Equal(t, 2, bus.SubscriberCount())
}

func TestSyncEventBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var delivered atomic.Int64
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(domain.EventParticlesReseeded, func(domain.Event) { delivered.Add(1) })
		}()
		go func() {
			defer wg.Done()
			for range 50 {
				bus.Publish(domain.NewParticlesReseededEvent("s", 10))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, bus.SubscriberCount())
	before := delivered.Load()
	bus.Publish(domain.NewParticlesReseededEvent("s", 10))
	assert.Equal(t, before+10, delivered.Load())
}
