// Package transport describes the capabilities required of a publish/subscribe
// message broker in order to make correlated remote calls.
package transport

import (
	"context"
	"time"
)

// Dialer connects to a message broker.
type Dialer interface {
	// Dial connects to the broker at url.
	Dial(ctx context.Context, url string) (Connection, error)
}

// Connection is a connection to a message broker.
type Connection interface {
	// Session opens a new session on the connection.
	Session() (Session, error)

	// Close closes the connection and every session opened on it.
	Close() error
}

// Session is a unit of work on a broker connection. Destinations declared
// within a session are owned by it.
type Session interface {
	// Topic returns a destination that fans messages out to every subscriber.
	Topic(name string) (Destination, error)

	// Queue declares a destination that delivers messages to a single
	// consumer. The queue is deleted when the session is closed, or after ttl
	// has elapsed without use if ttl is non-zero.
	Queue(name string, ttl time.Duration) (Destination, error)

	// Publish sends msg to dst.
	Publish(dst Destination, msg Message) error

	// Consume waits for a message on dst whose correlation ID equals
	// correlationID. Messages with any other correlation ID are discarded.
	//
	// It returns nil and a nil error if no such message arrives within
	// timeout.
	Consume(dst Destination, correlationID string, timeout time.Duration) (*Message, error)

	// Close closes the session. It is not an error to close a session more than
	// once.
	Close() error
}

// DestinationKind distinguishes topics from queues.
type DestinationKind int

const (
	// TopicDestination is a destination that fans out to every subscriber.
	TopicDestination DestinationKind = iota

	// QueueDestination is a destination with a single consumer.
	QueueDestination
)

func (k DestinationKind) String() string {
	if k == TopicDestination {
		return "topic"
	}

	return "queue"
}

// Destination is a named location to which messages are published.
type Destination struct {
	Kind DestinationKind
	Name string
}

// IsZero returns true if d is the zero-value.
func (d Destination) IsZero() bool {
	return d.Name == ""
}

func (d Destination) String() string {
	return d.Kind.String() + ":" + d.Name
}

// Message is a message sent or received through the broker.
type Message struct {
	// CorrelationID ties a response to the request that produced it.
	CorrelationID string

	// Subject is the routing key used when publishing to a topic.
	Subject string

	// ReplyTo is the destination to which a response should be sent.
	ReplyTo Destination

	// Expiration is the time after which the message should no longer be
	// delivered. The zero-value means the message never expires.
	Expiration time.Time

	// Type is an application-defined message type.
	Type string

	// SpanContext is the binary representation of the tracing span context of
	// the sender, if any.
	SpanContext []byte

	// Body is the message content.
	Body []byte
}

// IsExpired returns true if m has expired at time t.
func (m *Message) IsExpired(t time.Time) bool {
	return !m.Expiration.IsZero() && !t.Before(m.Expiration)
}
