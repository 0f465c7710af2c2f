// Package eventbus provides the in-process EventBus used to fan out engine and
// playback events.
package eventbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// ErrClosed is returned by Close when the bus was already closed.
var ErrClosed = errors.New("event bus closed")

// wildcard marks a subscription that receives every event type.
const wildcard domain.EventType = "*"

// SyncEventBus delivers events on the publisher's goroutine. Handlers for the
// event's type run first, in subscription order, followed by wildcard handlers.
//
// Thread-safety: This implementation is thread-safe. The subscriber list is
// copied before dispatch so a handler may subscribe or unsubscribe freely.
type SyncEventBus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	closed bool
}

type subscription struct {
	id        domain.SubscriptionID
	eventType domain.EventType
	handler   domain.EventHandler
}

// NewSyncEventBus creates an event bus. logger may be nil.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	if logger != nil {
		logger = logger.With(slog.String("component", "eventbus"))
	}
	return &SyncEventBus{logger: logger}
}

// Publish implements ports.EventBus. Nil events are dropped. A panicking
// handler is logged and skipped; remaining handlers still run.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	matched := make([]subscription, 0, len(bus.subs))
	for _, s := range bus.subs {
		if s.eventType == event.Type() {
			matched = append(matched, s)
		}
	}
	for _, s := range bus.subs {
		if s.eventType == wildcard {
			matched = append(matched, s)
		}
	}
	bus.mu.RUnlock()

	for _, s := range matched {
		bus.dispatch(s, event)
	}
}

func (bus *SyncEventBus) dispatch(s subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && bus.logger != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())),
				slog.String("subscription", string(s.id)))
		}
	}()

	s.handler(event)
}

// Subscribe implements ports.EventBus. It panics on a nil handler or a closed bus.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	return bus.add(eventType, handler)
}

// SubscribeAll implements ports.EventBus.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	return bus.add(wildcard, handler)
}

func (bus *SyncEventBus) add(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("eventbus: nil handler")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("eventbus: subscribe on closed bus")
	}

	bus.nextID++
	id := domain.SubscriptionID(fmt.Sprintf("%s#%d", eventType, bus.nextID))
	bus.subs = append(bus.subs, subscription{id: id, eventType: eventType, handler: handler})
	return id
}

// Unsubscribe implements ports.EventBus. Remaining subscriptions keep their order.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for i, s := range bus.subs {
		if s.id == id {
			bus.subs = append(bus.subs[:i:i], bus.subs[i+1:]...)
			return
		}
	}
}

// HasSubscribers implements ports.EventBus.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, s := range bus.subs {
		if s.eventType == eventType || s.eventType == wildcard {
			return true
		}
	}
	return false
}

// SubscriberCount returns the number of live subscriptions.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subs)
}

// Close implements ports.EventBus.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return ErrClosed
	}
	bus.closed = true
	bus.subs = nil
	return nil
}

var _ ports.EventBus = (*SyncEventBus)(nil)
