package amqpx

import (
	"errors"
	"sync"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/rinq/userstore-go/src/internal/x/deferx"
	"github.com/streadway/amqp"
	"go.uber.org/multierr"
)

type session struct {
	channel *amqp.Channel
	logger  twelf.Logger

	mutex  sync.Mutex
	closed bool
	queues []string
}

func (s *session) Topic(name string) (transport.Destination, error) {
	err := s.channel.ExchangeDeclare(
		name,
		amqp.ExchangeTopic,
		false, // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return transport.Destination{}, err
	}

	return transport.Destination{Kind: transport.TopicDestination, Name: name}, nil
}

func (s *session) Queue(name string, ttl time.Duration) (transport.Destination, error) {
	var args amqp.Table
	if ttl > 0 {
		args = amqp.Table{"x-expires": int64(ttl / time.Millisecond)}
	}

	_, err := s.channel.QueueDeclare(
		name,
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		args,
	)
	if err != nil {
		return transport.Destination{}, err
	}

	unlock := deferx.Lock(&s.mutex)
	defer unlock()

	s.queues = append(s.queues, name)

	return transport.Destination{Kind: transport.QueueDestination, Name: name}, nil
}

func (s *session) Publish(dst transport.Destination, msg transport.Message) error {
	exchange, key := route(dst, msg)

	return s.channel.Publish(
		exchange,
		key,
		false, // mandatory
		false, // immediate
		publishing(msg, time.Now()),
	)
}

func (s *session) Consume(
	dst transport.Destination,
	correlationID string,
	timeout time.Duration,
) (*transport.Message, error) {
	tag := "consume." + correlationID

	deliveries, err := s.channel.Consume(
		dst.Name,
		tag,
		false, // autoAck
		true,  // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = s.channel.Cancel(tag, false)
	}()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case del, ok := <-deliveries:
			if !ok {
				return nil, errors.New("channel closed while consuming from " + dst.Name)
			}

			msg := fromDelivery(del)

			if del.CorrelationId != correlationID || msg.IsExpired(time.Now()) {
				logRejected(s.logger, dst, correlationID, del.CorrelationId)

				if err := del.Reject(false); err != nil { // false = don't requeue
					return nil, err
				}

				continue
			}

			if err := del.Ack(false); err != nil {
				return nil, err
			}

			return &msg, nil

		case <-deadline.C:
			return nil, nil
		}
	}
}

// Close deletes the queues declared by the session and closes the channel.
func (s *session) Close() error {
	unlock := deferx.Lock(&s.mutex)
	defer unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	var err error
	for _, q := range s.queues {
		_, e := s.channel.QueueDelete(
			q,
			false, // ifUnused
			false, // ifEmpty
			false, // noWait
		)
		err = multierr.Append(err, e)
	}

	if e := s.channel.Close(); e != amqp.ErrClosed {
		err = multierr.Append(err, e)
	}

	return err
}

// route returns the exchange and routing key used to publish msg to dst.
func route(dst transport.Destination, msg transport.Message) (exchange, key string) {
	if dst.Kind == transport.QueueDestination {
		return "", dst.Name
	}

	return dst.Name, msg.Subject
}
