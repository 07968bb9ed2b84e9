package amqpx

import (
	"strconv"
	"time"

	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/streadway/amqp"
)

const (
	// expiresAtHeader holds the absolute expiration time of the message, as
	// milliseconds since the Unix epoch.
	expiresAtHeader = "x-exp"

	// spanContextHeader holds the binary representation of the sender's span
	// context.
	spanContextHeader = "sc"

	contentType = "application/json"
)

// publishing returns the AMQP representation of msg, as published at time
// now.
func publishing(msg transport.Message, now time.Time) amqp.Publishing {
	pub := amqp.Publishing{
		ContentType:   contentType,
		CorrelationId: msg.CorrelationID,
		ReplyTo:       msg.ReplyTo.Name,
		Type:          msg.Type,
		Timestamp:     now,
		Body:          msg.Body,
	}

	if !msg.Expiration.IsZero() {
		ttl := msg.Expiration.Sub(now) / time.Millisecond
		if ttl < 0 {
			ttl = 0
		}

		pub.Expiration = strconv.FormatInt(int64(ttl), 10)
		pub.Headers = amqp.Table{
			expiresAtHeader: unixMillis(msg.Expiration),
		}
	}

	if len(msg.SpanContext) != 0 {
		if pub.Headers == nil {
			pub.Headers = amqp.Table{}
		}

		pub.Headers[spanContextHeader] = msg.SpanContext
	}

	return pub
}

// fromDelivery returns the message carried by del.
func fromDelivery(del amqp.Delivery) transport.Message {
	msg := transport.Message{
		CorrelationID: del.CorrelationId,
		Subject:       del.RoutingKey,
		Type:          del.Type,
		Body:          del.Body,
	}

	if del.ReplyTo != "" {
		msg.ReplyTo = transport.Destination{
			Kind: transport.QueueDestination,
			Name: del.ReplyTo,
		}
	}

	switch v := del.Headers[expiresAtHeader].(type) {
	case int64:
		msg.Expiration = fromUnixMillis(v)
	case int32:
		msg.Expiration = fromUnixMillis(int64(v))
	}

	if sc, ok := del.Headers[spanContextHeader].([]byte); ok {
		msg.SpanContext = sc
	}

	return msg
}

func unixMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

func fromUnixMillis(ms int64) time.Time {
	return time.Unix(0, ms*int64(time.Millisecond))
}
