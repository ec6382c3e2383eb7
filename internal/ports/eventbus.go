// Package ports define the EventBus interface for event-driven communication.
// The event bus replaces callbacks and enables loose coupling between components.
package ports

import (
	"github.com/hariomify/hariomify/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Services publish state changes; presenters and the coordinator subscribe.
// Publishers never know who listens.
//
// Thread-safety: Implementations must be thread-safe as events may be published and
// subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	bus.Publish(domain.NewFavoriteToggledEvent(id, true))
//
//	subID := bus.Subscribe(domain.EventFavoriteToggled, func(event domain.Event) {
//	    e := event.(domain.FavoriteToggledEvent)
//	    view.Refresh(e.TrackID)
//	})
//
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type, then to the
	// wildcard subscribers. Handlers should return quickly.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type and
	// returns an id usable with Unsubscribe.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// Unknown ids are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if there are any active subscriptions for the given event type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and drops all subscriptions.
	Close() error
}
