package rpc

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rinq/userstore-go/src/internal/envelope"
	"github.com/rinq/userstore-go/src/internal/opentr"
	"github.com/rinq/userstore-go/src/internal/props"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/rinq/userstore-go/src/userstore"
)

// attempt is a single delivery attempt within a call. The connection, request
// session and topic are shared by every attempt of the same call.
type attempt struct {
	channel  *Channel
	span     opentracing.Span
	settings props.Settings
	conn     transport.Connection
	sess     transport.Session
	topic    transport.Destination
	reqType  userstore.RequestType
	payload  interface{}
	number   int
}

// do publishes the request with a new correlation ID and waits for the
// response. ok is false if no response arrived within the consume timeout.
func (a *attempt) do() (res Result, ok bool, err error) {
	c := a.channel
	id := c.newCorrelationID()

	sess, err := a.conn.Session()
	if err != nil {
		return Result{}, false, userstore.ConnectionError{Op: "open session", Cause: err}
	}

	// the response queue is owned by this session, closing it discards the
	// queue along with any late response to this attempt
	defer func() {
		if e := sess.Close(); e != nil {
			logCloseError(c.Logger, c.Tenant, a.reqType, e)
		}
	}()

	queue, err := sess.Queue(
		c.ResponseQueuePrefix+"."+id,
		a.settings.MessageLifetime,
	)
	if err != nil {
		return Result{}, false, userstore.ConnectionError{Op: "declare queue", Cause: err}
	}

	msg, err := a.request(id, queue)
	if err != nil {
		return Result{}, false, err
	}

	if c.Metrics != nil {
		c.Metrics.Attempt(string(a.reqType))
	}
	opentr.LogAttempt(a.span, id, a.number, a.settings.RetryLimit, len(msg.Body))

	if err := a.sess.Publish(a.topic, msg); err != nil {
		return Result{}, false, userstore.PublishError{
			RequestType:   a.reqType,
			CorrelationID: id,
			Cause:         err,
		}
	}

	logAttemptPublished(c.Logger, c.Tenant, a.reqType, id, a.number, a.settings.RetryLimit)

	in, err := sess.Consume(queue, id, a.settings.ConsumeTimeout)
	if err != nil {
		return Result{}, false, userstore.ConnectionError{Op: "consume", Cause: err}
	}

	if in == nil {
		opentr.LogTimeout(a.span, id, a.number)
		logAttemptTimedOut(c.Logger, c.Tenant, a.reqType, id, a.number, a.settings)
		return Result{}, false, nil
	}

	v, err := a.response(id, in)
	if err != nil {
		return Result{}, false, err
	}

	return Result{
		CorrelationID: id,
		Attempt:       a.number,
		Value:         v,
		Size:          len(in.Body),
	}, true, nil
}

// request builds the message that carries the request for the attempt with
// the given correlation ID.
func (a *attempt) request(id string, replyTo transport.Destination) (transport.Message, error) {
	c := a.channel

	req, err := envelope.EncodeRequest(id, a.reqType, a.payload, c.Tenant, c.Domain)
	if err != nil {
		return transport.Message{}, userstore.PublishError{
			RequestType:   a.reqType,
			CorrelationID: id,
			Cause:         err,
		}
	}

	body, err := envelope.MarshalRequest(req)
	if err != nil {
		return transport.Message{}, userstore.PublishError{
			RequestType:   a.reqType,
			CorrelationID: id,
			Cause:         err,
		}
	}

	msg := transport.Message{
		CorrelationID: id,
		Subject:       Subject(c.Tenant, a.reqType),
		ReplyTo:       replyTo,
		Type:          string(a.reqType),
		Body:          body,
	}

	if a.settings.MessageLifetime > 0 {
		msg.Expiration = c.now().Add(a.settings.MessageLifetime)
	}

	// the request is sent without a span context if it can not be packed
	if sc, err := opentr.PackSpanContext(a.span); err != nil {
		logSpanContextError(c.Logger, c.Tenant, a.reqType, id, err)
	} else {
		msg.SpanContext = sc
	}

	return msg, nil
}

// response unpacks the operation result from a response message.
func (a *attempt) response(id string, in *transport.Message) (interface{}, error) {
	r, err := envelope.UnmarshalResponse(a.reqType, in.Body)
	if err != nil {
		if e, ok := err.(userstore.DecodeError); ok {
			e.CorrelationID = id
			err = e
		}

		return nil, err
	}

	if r.CorrelationID != "" && r.CorrelationID != id {
		return nil, userstore.DecodeError{
			RequestType:   a.reqType,
			CorrelationID: id,
			Reason:        "response record carries correlation ID " + r.CorrelationID,
		}
	}

	r.CorrelationID = id

	return envelope.DecodeResponseEnvelope(a.reqType, r)
}

// Subject returns the routing key used for requests of type t made on behalf
// of tenant.
func Subject(tenant string, t userstore.RequestType) string {
	if tenant == "" {
		return string(t)
	}

	return tenant + "." + string(t)
}
