package rpc

import (
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/props"
	"github.com/rinq/userstore-go/src/userstore"
)

func logCallBegin(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	retryLimit int,
) {
	logger.Debug(
		"[%s] began '%s' call (retry limit: %d)",
		tenant,
		t,
		retryLimit,
	)
}

func logAttemptPublished(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	id string,
	n, limit int,
) {
	logger.Debug(
		"[%s] '%s' call %s attempt %d/%d published",
		tenant,
		t,
		id,
		n,
		limit,
	)
}

func logAttemptTimedOut(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	id string,
	n int,
	s props.Settings,
) {
	logger.Debug(
		"[%s] '%s' call %s attempt %d/%d received no response within %s",
		tenant,
		t,
		id,
		n,
		s.RetryLimit,
		s.ConsumeTimeout,
	)
}

func logCallSuccess(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	res Result,
	elapsed time.Duration,
) {
	logger.Debug(
		"[%s] '%s' call %s completed successfully after %d attempt(s) (%dms)",
		tenant,
		t,
		res.CorrelationID,
		res.Attempt,
		elapsed/time.Millisecond,
	)
}

func logCallError(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	err error,
) {
	logger.Log(
		"[%s] '%s' call failed: %s",
		tenant,
		t,
		err,
	)
}

func logCloseError(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	err error,
) {
	logger.Log(
		"[%s] '%s' call could not release broker resources: %s",
		tenant,
		t,
		err,
	)
}

func logSpanContextError(
	logger twelf.Logger,
	tenant string,
	t userstore.RequestType,
	id string,
	err error,
) {
	logger.Debug(
		"[%s] '%s' call %s is sent without a span context: %s",
		tenant,
		t,
		id,
		err,
	)
}
