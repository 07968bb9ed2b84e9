// Package transporttest provides an in-memory message broker for use in tests.
package transporttest

import (
	"context"
	"sync"

	"github.com/rinq/userstore-go/src/internal/transport"
)

// Handler handles a message published to a topic. It may call reply any
// number of times, from any goroutine, to send a message to the request's
// reply-to queue.
type Handler func(req transport.Message, reply func(transport.Message))

// Broker is an in-memory implementation of transport.Dialer.
//
// The Err fields can be set before use to make the corresponding operations
// fail.
type Broker struct {
	DialErr    error
	SessionErr error
	QueueErr   error
	PublishErr error
	ConsumeErr error

	m           sync.Mutex
	handlers    map[string]Handler
	queues      map[string]*queue
	published   []transport.Message
	dials       int
	connections int
	sessions    int
	dropped     int
	discarded   int
}

// NewBroker returns a new in-memory broker.
func NewBroker() *Broker {
	return &Broker{
		handlers: map[string]Handler{},
		queues:   map[string]*queue{},
	}
}

// Handle registers h as the subscriber to the topic named topic.
func (b *Broker) Handle(topic string, h Handler) {
	b.m.Lock()
	defer b.m.Unlock()

	b.handlers[topic] = h
}

// Dial returns a new connection to the broker. The URL is ignored.
func (b *Broker) Dial(ctx context.Context, url string) (transport.Connection, error) {
	b.m.Lock()
	defer b.m.Unlock()

	b.dials++

	if b.DialErr != nil {
		return nil, b.DialErr
	}

	b.connections++

	return &connection{broker: b}, nil
}

// Published returns the messages that have been published to topics, in
// order.
func (b *Broker) Published() []transport.Message {
	b.m.Lock()
	defer b.m.Unlock()

	return append([]transport.Message(nil), b.published...)
}

// Dials returns the number of calls to Dial().
func (b *Broker) Dials() int {
	b.m.Lock()
	defer b.m.Unlock()

	return b.dials
}

// OpenConnections returns the number of connections that have not been
// closed.
func (b *Broker) OpenConnections() int {
	b.m.Lock()
	defer b.m.Unlock()

	return b.connections
}

// OpenSessions returns the number of sessions that have not been closed.
func (b *Broker) OpenSessions() int {
	b.m.Lock()
	defer b.m.Unlock()

	return b.sessions
}

// Queues returns the number of queues that currently exist.
func (b *Broker) Queues() int {
	b.m.Lock()
	defer b.m.Unlock()

	return len(b.queues)
}

// Dropped returns the number of replies that were discarded because their
// reply-to queue no longer existed.
func (b *Broker) Dropped() int {
	b.m.Lock()
	defer b.m.Unlock()

	return b.dropped
}

// Discarded returns the number of messages that were consumed from a queue
// and discarded because their correlation ID did not match, or because they
// had expired.
func (b *Broker) Discarded() int {
	b.m.Lock()
	defer b.m.Unlock()

	return b.discarded
}

// deliver places msg on the queue named name, or drops it if the queue does
// not exist.
func (b *Broker) deliver(name string, msg transport.Message) {
	b.m.Lock()
	q, ok := b.queues[name]
	if !ok {
		b.dropped++
	}
	b.m.Unlock()

	if ok {
		q.push(msg)
	}
}

func (b *Broker) publish(dst transport.Destination, msg transport.Message) error {
	b.m.Lock()

	if b.PublishErr != nil {
		b.m.Unlock()
		return b.PublishErr
	}

	if dst.Kind == transport.QueueDestination {
		b.m.Unlock()
		b.deliver(dst.Name, msg)
		return nil
	}

	b.published = append(b.published, msg)
	h := b.handlers[dst.Name]
	b.m.Unlock()

	if h != nil {
		h(msg, func(res transport.Message) {
			b.deliver(msg.ReplyTo.Name, res)
		})
	}

	return nil
}
