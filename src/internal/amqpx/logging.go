package amqpx

import (
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/streadway/amqp"
)

func logConnected(logger twelf.Logger, url string, props amqp.Table) {
	if !logger.IsDebug() {
		return
	}

	product, _ := props["product"].(string)
	ver, _ := props["version"].(string)

	logger.Debug(
		"connected to '%s' (%s %s)",
		url,
		product,
		ver,
	)
}

func logRejected(
	logger twelf.Logger,
	dst transport.Destination,
	expected, actual string,
) {
	logger.Debug(
		"rejected delivery %s from %s while waiting for %s",
		actual,
		dst,
		expected,
	)
}
