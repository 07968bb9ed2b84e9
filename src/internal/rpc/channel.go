// Package rpc makes correlated request/response calls to the remote agent over
// a publish/subscribe broker.
package rpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rinq/userstore-go/src/internal/metrics"
	"github.com/rinq/userstore-go/src/internal/opentr"
	"github.com/rinq/userstore-go/src/internal/props"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/rinq/userstore-go/src/internal/x/deferx"
	"github.com/rinq/userstore-go/src/userstore"
)

// Channel performs remote calls. It holds no state between calls, and is safe
// for concurrent use.
type Channel struct {
	// Dialer connects to the broker at the start of each call.
	Dialer transport.Dialer

	// Properties holds the required user store properties. They are resolved
	// at the start of each call.
	Properties map[string]string

	// Tenant and Domain are sent with every request.
	Tenant string
	Domain string

	// RequestTopic is the name of the topic to which requests are published.
	RequestTopic string

	// ResponseQueuePrefix is prepended to the correlation ID to form the name
	// of each attempt's response queue.
	ResponseQueuePrefix string

	Logger  twelf.Logger
	Tracer  opentracing.Tracer
	Metrics *metrics.Collectors

	// NewCorrelationID returns a new unique correlation ID. If it is nil,
	// random UUIDs are used.
	NewCorrelationID func() string

	// Now returns the current time. If it is nil, time.Now() is used.
	Now func() time.Time
}

// Result is the outcome of a successful call.
type Result struct {
	// CorrelationID is the correlation ID of the attempt that was answered.
	CorrelationID string

	// Attempt is the 1-based number of the attempt that was answered.
	Attempt int

	// Value is the operation result carried in the response.
	Value interface{}

	// Size is the size of the response message body, in bytes.
	Size int
}

// Call sends a request of type t to the remote agent and waits for the
// response.
//
// Each attempt uses a new correlation ID and response queue. An attempt that
// is not answered within the consume timeout is abandoned and a new attempt is
// made, up to the retry limit. Any other failure ends the call immediately.
//
// ctx is checked before each attempt, it does not interrupt an attempt that is
// already waiting for a response.
func (c *Channel) Call(
	ctx context.Context,
	t userstore.RequestType,
	payload interface{},
) (res Result, err error) {
	startedAt := c.now()

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, c.tracer(), "")
	defer span.Finish()
	opentr.SetupCall(span, t, c.Tenant, c.Domain)

	defer func() {
		c.complete(span, t, res, err, startedAt)
	}()

	s, err := props.Resolve(c.Properties)
	if err != nil {
		return
	}

	if s.RetryLimit <= 0 {
		err = userstore.TimeoutError{RequestType: t, Timeout: s.ConsumeTimeout}
		return
	}

	var release deferx.Set
	defer release.Run()

	conn, err := c.Dialer.Dial(ctx, s.BrokerURL)
	if err != nil {
		err = userstore.ConnectionError{Op: "dial", Cause: err}
		return
	}
	release.AddE(conn.Close, c.reportCloseError(t))

	sess, err := conn.Session()
	if err != nil {
		err = userstore.ConnectionError{Op: "open session", Cause: err}
		return
	}
	release.AddE(sess.Close, c.reportCloseError(t))

	topic, err := sess.Topic(c.RequestTopic)
	if err != nil {
		err = userstore.ConnectionError{Op: "declare topic", Cause: err}
		return
	}

	logCallBegin(c.Logger, c.Tenant, t, s.RetryLimit)

	a := &attempt{
		channel:  c,
		span:     span,
		settings: s,
		conn:     conn,
		sess:     sess,
		topic:    topic,
		reqType:  t,
		payload:  payload,
	}

	for a.number = 1; a.number <= s.RetryLimit; a.number++ {
		if err = ctx.Err(); err != nil {
			return
		}

		var ok bool
		res, ok, err = a.do()
		if ok || err != nil {
			return
		}
	}

	err = userstore.TimeoutError{
		RequestType: t,
		Attempts:    s.RetryLimit,
		Timeout:     s.ConsumeTimeout,
	}

	return
}

// complete records the outcome of a call.
func (c *Channel) complete(
	span opentracing.Span,
	t userstore.RequestType,
	res Result,
	err error,
	startedAt time.Time,
) {
	elapsed := c.now().Sub(startedAt)

	if err == nil {
		opentr.LogSuccess(span, res.CorrelationID, res.Size)
		logCallSuccess(c.Logger, c.Tenant, t, res, elapsed)
	} else {
		opentr.LogError(span, err)
		logCallError(c.Logger, c.Tenant, t, err)
	}

	if c.Metrics != nil {
		c.Metrics.Call(string(t), outcome(err), elapsed)
	}
}

func (c *Channel) reportCloseError(t userstore.RequestType) func(error) {
	return func(err error) {
		logCloseError(c.Logger, c.Tenant, t, err)
	}
}

func (c *Channel) newCorrelationID() string {
	if c.NewCorrelationID != nil {
		return c.NewCorrelationID()
	}

	return uuid.NewString()
}

func (c *Channel) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}

	return time.Now()
}

func (c *Channel) tracer() opentracing.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}

	return opentracing.NoopTracer{}
}

// outcome returns the metrics outcome label for err.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case userstore.IsTimeout(err):
		return metrics.OutcomeTimeout
	case userstore.IsDecodeError(err):
		return metrics.OutcomeDecodeError
	case userstore.IsConfigError(err):
		return metrics.OutcomeConfigError
	case userstore.IsTransportError(err):
		return metrics.OutcomeTransportError
	default:
		return metrics.OutcomeCanceled
	}
}
