// Package eventbus provides the in-process implementation of ports.EventBus.
package eventbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// ErrClosed is returned by Close on an already closed bus.
var ErrClosed = errors.New("event bus already closed")

// SyncEventBus delivers events synchronously, on the publisher's goroutine,
// in subscription order. Wildcard subscribers run after typed subscribers.
//
// Thread-safety: Publish, Subscribe and Unsubscribe may be called concurrently,
// including from inside a handler.
type SyncEventBus struct {
	logger *slog.Logger

	subscribers    map[domain.EventType][]subscription
	allSubscribers []subscription
	mu             sync.RWMutex

	idCounter atomic.Uint64
	closed    bool
}

type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
// A nil logger discards bus diagnostics.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncEventBus{
		logger:      logger.With(slog.String("component", "eventbus")),
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers of that event type.
//
// If the event bus is closed, this method does nothing. Panics in handlers are
// recovered and logged; remaining handlers still run.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	handlers, ok := bus.snapshot(event.Type())
	if !ok {
		return
	}

	bus.logger.Debug("event published",
		slog.String("event_type", string(event.Type())),
		slog.Int("handlers", len(handlers)))

	for _, sub := range handlers {
		bus.callHandler(sub, event)
	}
}

// snapshot copies the handlers for eventType so they run without the lock held.
func (bus *SyncEventBus) snapshot(eventType domain.EventType) ([]subscription, bool) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	if bus.closed {
		return nil, false
	}

	typed := bus.subscribers[eventType]
	handlers := make([]subscription, 0, len(typed)+len(bus.allSubscribers))
	handlers = append(handlers, typed...)
	handlers = append(handlers, bus.allSubscribers...)
	return handlers, true
}

func (bus *SyncEventBus) callHandler(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("subscription", string(sub.id)),
				slog.String("event_type", string(event.Type())))
		}
	}()

	sub.handler(event)
}

// Subscribe registers a handler for events of the specified type.
// The same handler can be registered multiple times with different IDs.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-%d", bus.idCounter.Add(1)))
	bus.subscribers[eventType] = append(bus.subscribers[eventType], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-all-%d", bus.idCounter.Add(1)))
	bus.allSubscribers = append(bus.allSubscribers, subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered event handler.
// Delivery order of the remaining handlers is preserved.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for eventType, subs := range bus.subscribers {
		if kept, removed := without(subs, id); removed {
			bus.subscribers[eventType] = kept
			return
		}
	}

	if kept, removed := without(bus.allSubscribers, id); removed {
		bus.allSubscribers = kept
	}
}

func without(subs []subscription, id domain.SubscriptionID) ([]subscription, bool) {
	for i, sub := range subs {
		if sub.id == id {
			kept := make([]subscription, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			return append(kept, subs[i+1:]...), true
		}
	}
	return subs, false
}

// HasSubscribers returns true if an event of the given type would reach any handler.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subscribers[eventType]) > 0 || len(bus.allSubscribers) > 0
}

// Close shuts down the event bus and clears all subscriptions.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return ErrClosed
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil
	return nil
}

// SubscriberCount returns the number of active subscriptions, typed and wildcard.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.allSubscribers)
	for _, subs := range bus.subscribers {
		count += len(subs)
	}
	return count
}

// Verify that SyncEventBus implements the EventBus interface
var _ ports.EventBus = (*SyncEventBus)(nil)
