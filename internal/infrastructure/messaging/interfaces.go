// Package messaging provides the in-process broadcast bus connecting the
// independently registered section controllers.
package messaging

import "github.com/dzakyfr/portfolio-go/internal/domain/events"

// Publisher is the sending side of the bus.
type Publisher interface {
	Publish(msg events.Message)
}

// Subscriber is the receiving side of the bus. Handlers registered through
// Subscribe are invoked synchronously on the publishing goroutine; channel
// subscribers receive asynchronously with drop-on-full semantics.
type Subscriber interface {
	Subscribe(name string, handler func(events.Message))
	Unsubscribe(name string)
	SubscribeChan(name string) <-chan events.Message
	UnsubscribeChan(name string)
}

// Broker combines both sides of the bus.
type Broker interface {
	Publisher
	Subscriber
}
