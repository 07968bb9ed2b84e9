// Package amqptest provides helpers for tests that require an AMQP broker.
package amqptest

import (
	"os"

	"github.com/streadway/amqp"
)

// DSNVariable is the name of the environment variable that holds the URL of
// the broker used by functional tests.
const DSNVariable = "USERSTORE_AMQP_DSN"

// DSN returns the URL of the broker used by functional tests. ok is false if
// no broker is configured, in which case such tests should be skipped.
func DSN() (dsn string, ok bool) {
	dsn = os.Getenv(DSNVariable)
	return dsn, dsn != ""
}

// Connect returns a new AMQP connection for testing.
func Connect() *amqp.Connection {
	dsn, ok := DSN()
	if !ok {
		panic(DSNVariable + " is not set")
	}

	broker, err := amqp.Dial(dsn)
	if err != nil {
		panic(err)
	}

	return broker
}

// PublishingToDelivery creates a delivery message from a publishing message,
// partially simulating its transmission via the broker.
func PublishingToDelivery(msg *amqp.Publishing) *amqp.Delivery {
	return &amqp.Delivery{
		Headers:         msg.Headers,
		ContentType:     msg.ContentType,
		ContentEncoding: msg.ContentEncoding,
		DeliveryMode:    msg.DeliveryMode,
		Priority:        msg.Priority,
		CorrelationId:   msg.CorrelationId,
		ReplyTo:         msg.ReplyTo,
		Expiration:      msg.Expiration,
		MessageId:       msg.MessageId,
		Timestamp:       msg.Timestamp,
		Type:            msg.Type,
		UserId:          msg.UserId,
		AppId:           msg.AppId,
		Body:            msg.Body,
	}
}
