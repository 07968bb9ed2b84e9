package opentr

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"github.com/rinq/userstore-go/src/userstore"
)

// SetupRequest configures s as a span for the handling of a request by the
// remote agent.
func SetupRequest(s opentracing.Span, t userstore.RequestType, tenant, correlationID string) {
	s.SetOperationName(string(t) + " request")

	ext.SpanKindRPCServer.Set(s)
	s.SetTag("subsystem", "userstore")
	s.SetTag("request_type", string(t))
	s.SetTag("correlation_id", correlationID)
	AddTenant(s, tenant)
}

// LogRequestSuccess logs information about a request that was answered to s.
func LogRequestSuccess(s opentracing.Span, size int) {
	s.LogFields(
		successEvent,
		log.Int("size", size),
	)
}

// LogRequestError logs information about a request that could not be answered
// to s.
func LogRequestError(s opentracing.Span, err error) {
	ext.Error.Set(s, true)

	s.LogFields(
		errorEvent,
		log.String("message", err.Error()),
	)
}
