package ports

import (
	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// EventBus carries engine and playback lifecycle events to whoever listens:
// the window presenter, the CLI status line, tests.
//
//	id := bus.Subscribe(domain.EventVisualizerStopped, func(e domain.Event) {
//	    stopped := e.(domain.VisualizerStoppedEvent)
//	    log.Info("visualizer stopped", "reason", stopped.Reason)
//	})
//	defer bus.Unsubscribe(id)
//
// Implementations must be safe for concurrent use; the engine publishes from the
// frame scheduler goroutine while hosts subscribe from their own.
type EventBus interface {
	// Publish delivers event to the handlers subscribed to its type, then to the
	// handlers subscribed to everything. It must not block for long.
	Publish(event domain.Event)

	// Subscribe registers handler for one event type.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// SubscribeAll registers handler for every event.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown ids are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// HasSubscribers reports whether publishing eventType would reach anyone.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops every subscription. Publishing afterwards is a no-op.
	Close() error
}
