package transporttest

import (
	"errors"
	"sync"
	"time"

	"github.com/rinq/userstore-go/src/internal/transport"
)

type connection struct {
	broker *Broker

	m        sync.Mutex
	closed   bool
	sessions []*session
}

func (c *connection) Session() (transport.Session, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.closed {
		return nil, errors.New("connection is closed")
	}

	b := c.broker
	b.m.Lock()
	defer b.m.Unlock()

	if b.SessionErr != nil {
		return nil, b.SessionErr
	}

	b.sessions++

	s := &session{broker: b}
	c.sessions = append(c.sessions, s)

	return s, nil
}

func (c *connection) Close() error {
	c.m.Lock()
	defer c.m.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true

	for _, s := range c.sessions {
		s.Close()
	}

	c.broker.m.Lock()
	c.broker.connections--
	c.broker.m.Unlock()

	return nil
}

type session struct {
	broker *Broker

	m      sync.Mutex
	closed bool
	queues []string
}

func (s *session) Topic(name string) (transport.Destination, error) {
	return transport.Destination{Kind: transport.TopicDestination, Name: name}, nil
}

func (s *session) Queue(name string, ttl time.Duration) (transport.Destination, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.closed {
		return transport.Destination{}, errors.New("session is closed")
	}

	b := s.broker
	b.m.Lock()
	defer b.m.Unlock()

	if b.QueueErr != nil {
		return transport.Destination{}, b.QueueErr
	}

	if _, ok := b.queues[name]; !ok {
		b.queues[name] = newQueue()
		s.queues = append(s.queues, name)
	}

	return transport.Destination{Kind: transport.QueueDestination, Name: name}, nil
}

func (s *session) Publish(dst transport.Destination, msg transport.Message) error {
	if s.isClosed() {
		return errors.New("session is closed")
	}

	return s.broker.publish(dst, msg)
}

func (s *session) Consume(
	dst transport.Destination,
	correlationID string,
	timeout time.Duration,
) (*transport.Message, error) {
	if s.isClosed() {
		return nil, errors.New("session is closed")
	}

	b := s.broker
	b.m.Lock()
	err := b.ConsumeErr
	q, ok := b.queues[dst.Name]
	b.m.Unlock()

	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errors.New("queue " + dst.Name + " does not exist")
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case msg := <-q.messages:
			if msg.CorrelationID == correlationID && !msg.IsExpired(time.Now()) {
				return &msg, nil
			}

			b.m.Lock()
			b.discarded++
			b.m.Unlock()

		case <-deadline.C:
			return nil, nil
		}
	}
}

func (s *session) Close() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	b := s.broker
	b.m.Lock()
	defer b.m.Unlock()

	for _, n := range s.queues {
		delete(b.queues, n)
	}

	b.sessions--

	return nil
}

func (s *session) isClosed() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.closed
}

type queue struct {
	messages chan transport.Message
}

func newQueue() *queue {
	return &queue{
		messages: make(chan transport.Message, 64),
	}
}

func (q *queue) push(msg transport.Message) {
	select {
	case q.messages <- msg:
	default:
	}
}
