package agent

import (
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/envelope"
	"github.com/rinq/userstore-go/src/internal/transport"
)

func logHandled(logger twelf.Logger, r envelope.Request) {
	logger.Debug(
		"[%s] answered '%s' request %s",
		r.Tenant,
		r.RequestType,
		r.CorrelationID,
	)
}

func logExpired(logger twelf.Logger, req transport.Message) {
	logger.Debug(
		"dropped '%s' request %s, it expired at %s",
		req.Type,
		req.CorrelationID,
		req.Expiration,
	)
}

func logMalformed(logger twelf.Logger, req transport.Message, err error) {
	logger.Log(
		"dropped '%s' request %s: %s",
		req.Type,
		req.CorrelationID,
		err,
	)
}

func logReplyError(logger twelf.Logger, req transport.Message, err error) {
	logger.Log(
		"could not reply to '%s' request %s: %s",
		req.Type,
		req.CorrelationID,
		err,
	)
}
