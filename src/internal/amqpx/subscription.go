package amqpx

import (
	"context"
	"errors"
	"time"

	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/streadway/amqp"
	"go.uber.org/multierr"
)

// Subscription receives the messages published to a topic whose subject
// matches a routing pattern.
type Subscription struct {
	conn       transport.Connection
	session    *session
	deliveries <-chan amqp.Delivery
}

// Subscribe connects to the broker at url and binds a new exclusive queue to
// the topic exchange named topic, using the routing pattern.
//
// At most preFetch messages are delivered before they are acknowledged.
func (d *Dialer) Subscribe(
	ctx context.Context,
	url string,
	topic string,
	pattern string,
	preFetch int,
) (sub *Subscription, err error) {
	conn, err := d.Dial(ctx, url)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = conn.Close()
		}
	}()

	s, err := conn.Session()
	if err != nil {
		return nil, err
	}

	sess := s.(*session)

	if _, err = sess.Topic(topic); err != nil {
		return nil, err
	}

	q, err := sess.channel.QueueDeclare(
		"",    // name, chosen by the broker
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err = sess.channel.QueueBind(q.Name, pattern, topic, false, nil); err != nil {
		return nil, err
	}

	if err = sess.channel.Qos(preFetch, 0, false); err != nil {
		return nil, err
	}

	deliveries, err := sess.channel.Consume(
		q.Name,
		q.Name, // consumer tag
		false,  // autoAck
		true,   // exclusive
		false,  // noLocal
		false,  // noWait
		nil,    // args
	)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		conn:       conn,
		session:    sess,
		deliveries: deliveries,
	}, nil
}

// Receive waits for the next message.
func (s *Subscription) Receive(ctx context.Context) (transport.Message, error) {
	select {
	case del, ok := <-s.deliveries:
		if !ok {
			return transport.Message{}, errors.New("subscription channel closed")
		}

		if err := del.Ack(false); err != nil {
			return transport.Message{}, err
		}

		return fromDelivery(del), nil

	case <-ctx.Done():
		return transport.Message{}, ctx.Err()
	}
}

// Reply sends msg to the reply-to queue of req. The message never outlives
// the request.
func (s *Subscription) Reply(req transport.Message, msg transport.Message) error {
	if req.ReplyTo.IsZero() {
		return errors.New("request " + req.CorrelationID + " has no reply-to queue")
	}

	if msg.Expiration.IsZero() {
		msg.Expiration = req.Expiration
	}

	return s.session.channel.Publish(
		"",
		req.ReplyTo.Name,
		false, // mandatory
		false, // immediate
		publishing(msg, time.Now()),
	)
}

// Close closes the subscription and its broker connection.
func (s *Subscription) Close() error {
	return multierr.Append(
		s.session.Close(),
		s.conn.Close(),
	)
}
