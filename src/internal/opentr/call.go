package opentr

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"github.com/rinq/userstore-go/src/userstore"
)

var (
	attemptEvent = log.String("event", "attempt")
	timeoutEvent = log.String("event", "timeout")

	errorSourceClient = log.String("error.source", "client")
	errorSourceServer = log.String("error.source", "server")
)

// SetupCall configures s as a span for a remote call.
func SetupCall(s opentracing.Span, t userstore.RequestType, tenant, domain string) {
	s.SetOperationName(string(t) + " call")

	ext.SpanKindRPCClient.Set(s)
	s.SetTag("subsystem", "userstore")
	s.SetTag("request_type", string(t))
	s.SetTag("domain", domain)
	AddTenant(s, tenant)
}

// LogAttempt logs information about a delivery attempt to s.
func LogAttempt(s opentracing.Span, correlationID string, attempt, limit, size int) {
	s.LogFields(
		attemptEvent,
		log.String("correlation_id", correlationID),
		log.Int("attempt", attempt),
		log.Int("limit", limit),
		log.Int("size", size),
	)
}

// LogTimeout logs information about an attempt that did not receive a
// response to s.
func LogTimeout(s opentracing.Span, correlationID string, attempt int) {
	s.LogFields(
		timeoutEvent,
		log.String("correlation_id", correlationID),
		log.Int("attempt", attempt),
	)
}

// LogSuccess logs information about a successful response to s.
func LogSuccess(s opentracing.Span, correlationID string, size int) {
	s.LogFields(
		successEvent,
		log.String("correlation_id", correlationID),
		log.Int("size", size),
	)
}

// LogError logs information about err to s.
func LogError(s opentracing.Span, err error) {
	ext.Error.Set(s, true)

	switch err.(type) {
	case userstore.DecodeError:
		s.LogFields(
			errorEvent,
			log.String("error.kind", "decode"),
			log.String("message", err.Error()),
			errorSourceServer,
		)

	case userstore.TimeoutError:
		s.LogFields(
			errorEvent,
			log.String("error.kind", "timeout"),
			log.String("message", err.Error()),
			errorSourceServer,
		)

	default:
		s.LogFields(
			errorEvent,
			log.String("message", err.Error()),
			errorSourceClient,
		)
	}
}
