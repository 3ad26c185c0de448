package messaging

import (
	"sync"

	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

const chanBufferSize = 16

// Bus is the process-wide broadcast channel for edit-mode signals. Delivery
// is synchronous and at-most-once per currently registered subscriber; there
// is no replay, so a subscriber registered after a publish never sees that
// message. The registry is explicit: every subscriber has a name, and the
// full listener set is knowable at runtime.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]func(events.Message)
	channels map[string]chan events.Message
	logger   *logging.ChanneledLogger
}

// NewBus creates an empty broadcast bus.
func NewBus(logger *logging.ChanneledLogger) *Bus {
	return &Bus{
		handlers: make(map[string]func(events.Message)),
		channels: make(map[string]chan events.Message),
		logger:   logger,
	}
}

// Subscribe registers a named handler. Registering the same name again
// replaces the previous handler.
func (b *Bus) Subscribe(name string, handler func(events.Message)) {
	b.mu.Lock()
	b.handlers[name] = handler
	b.mu.Unlock()

	b.logger.Bus().Debug("Subscriber registered", "name", name)
}

// Unsubscribe removes a named handler. Removing an unknown name is a no-op.
func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	delete(b.handlers, name)
	b.mu.Unlock()

	b.logger.Bus().Debug("Subscriber unregistered", "name", name)
}

// SubscribeChan registers a named buffered channel subscriber. Messages are
// dropped rather than blocking when the channel is full.
func (b *Bus) SubscribeChan(name string) <-chan events.Message {
	ch := make(chan events.Message, chanBufferSize)

	b.mu.Lock()
	if old, exists := b.channels[name]; exists {
		close(old)
	}
	b.channels[name] = ch
	b.mu.Unlock()

	b.logger.Bus().Debug("Channel subscriber registered", "name", name)
	return ch
}

// UnsubscribeChan removes and closes a named channel subscriber.
func (b *Bus) UnsubscribeChan(name string) {
	b.mu.Lock()
	if ch, exists := b.channels[name]; exists {
		close(ch)
		delete(b.channels, name)
	}
	b.mu.Unlock()

	b.logger.Bus().Debug("Channel subscriber unregistered", "name", name)
}

// Publish fans a message out to every current subscriber. Handlers run
// synchronously on the caller's goroutine, outside the registry lock, so a
// handler may publish or (un)subscribe without deadlocking.
func (b *Bus) Publish(msg events.Message) {
	b.mu.RLock()
	handlers := make([]func(events.Message), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	b.logger.Bus().Debug("Broadcasting message", "kind", string(msg.Kind()), "handlers", len(handlers))

	for _, h := range handlers {
		h(msg)
	}

	// Channel sends stay under the read lock so UnsubscribeChan cannot close
	// a channel mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.channels {
		select {
		case ch <- msg:
		default:
			b.logger.Bus().Warn("Subscriber channel full, message dropped", "kind", string(msg.Kind()))
		}
	}
}

// SubscriberCount returns the number of registered subscribers of both kinds.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers) + len(b.channels)
}
