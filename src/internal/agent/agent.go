// Package agent is a reference implementation of the remote agent that answers
// user store requests. It is used by functional tests and the sandbox.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rinq/userstore-go/src/internal/decode"
	"github.com/rinq/userstore-go/src/internal/envelope"
	"github.com/rinq/userstore-go/src/internal/opentr"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/rinq/userstore-go/src/userstore"
)

// AuthenticationFailure is the result token sent when a credential is
// rejected.
const AuthenticationFailure = "FAILURE"

// Source is a stream of requests that can be replied to.
type Source interface {
	// Receive waits for the next request.
	Receive(ctx context.Context) (transport.Message, error)

	// Reply sends msg in response to req.
	Reply(req transport.Message, msg transport.Message) error
}

// Agent answers user store requests from a Directory.
type Agent struct {
	Directory *Directory
	Logger    twelf.Logger
	Tracer    opentracing.Tracer

	// Now returns the current time. If it is nil, time.Now() is used.
	Now func() time.Time
}

// Run answers requests from src until ctx is canceled or src fails.
func (a *Agent) Run(ctx context.Context, src Source) error {
	for {
		req, err := src.Receive(ctx)
		if err != nil {
			return err
		}

		a.Respond(req, func(res transport.Message) {
			if err := src.Reply(req, res); err != nil {
				logReplyError(a.Logger, req, err)
			}
		})
	}
}

// Respond answers req by calling reply, unless req has expired or is
// malformed.
func (a *Agent) Respond(req transport.Message, reply func(transport.Message)) {
	res, ok := a.Handle(req)
	if ok {
		reply(res)
	}
}

// Handle produces the response to req. ok is false if req should be dropped
// without a response.
func (a *Agent) Handle(req transport.Message) (res transport.Message, ok bool) {
	if req.IsExpired(a.now()) {
		logExpired(a.Logger, req)
		return transport.Message{}, false
	}

	r, err := envelope.UnmarshalRequest(req.Body)
	if err != nil {
		logMalformed(a.Logger, req, err)
		return transport.Message{}, false
	}

	span := a.startSpan(req, r)
	defer span.Finish()

	result, err := a.dispatch(r)
	if err != nil {
		opentr.LogRequestError(span, err)
		logMalformed(a.Logger, req, err)
		return transport.Message{}, false
	}

	env, err := envelope.NewResponse(r.CorrelationID, result)
	if err == nil {
		res.Body, err = envelope.MarshalResponse(env)
	}
	if err != nil {
		opentr.LogRequestError(span, err)
		logMalformed(a.Logger, req, err)
		return transport.Message{}, false
	}

	res.CorrelationID = req.CorrelationID
	res.Expiration = req.Expiration
	res.Type = req.Type

	opentr.LogRequestSuccess(span, len(res.Body))
	logHandled(a.Logger, r)

	return res, true
}

// dispatch performs the operation named by the request type of r.
func (a *Agent) dispatch(r envelope.Request) (interface{}, error) {
	var p map[string]string
	if err := r.Payload(&p); err != nil {
		return nil, err
	}

	switch r.RequestType {
	case userstore.Authenticate:
		if a.Directory.Authenticate(p["username"], p["password"]) {
			return decode.AuthenticationSuccess, nil
		}
		return AuthenticationFailure, nil

	case userstore.GetClaims:
		return a.Directory.Attributes(p["username"], parseNames(p["attributes"])), nil

	case userstore.GetUserList:
		return map[string]interface{}{
			decode.UsernamesField: a.Directory.UserNames(p["filter"], parseLimit(p["limit"])),
		}, nil

	case userstore.GetRoles:
		return map[string]interface{}{
			decode.GroupsField: a.Directory.RoleNames(p["filter"], parseLimit(p["limit"])),
		}, nil

	case userstore.GetUserRoles:
		return map[string]interface{}{
			decode.GroupsField: a.Directory.Groups(p["username"]),
		}, nil
	}

	return nil, fmt.Errorf("request type '%s' is not supported", r.RequestType)
}

func (a *Agent) startSpan(req transport.Message, r envelope.Request) opentracing.Span {
	t := a.Tracer
	if t == nil {
		t = opentracing.NoopTracer{}
	}

	var opts []opentracing.StartSpanOption
	if sc, err := opentr.UnpackSpanContext(t, req.SpanContext); err == nil && sc != nil {
		opts = append(opts, opentracing.ChildOf(sc))
	}

	span := t.StartSpan("", opts...)
	opentr.SetupRequest(span, r.RequestType, r.Tenant, r.CorrelationID)

	return span
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}

	return time.Now()
}
