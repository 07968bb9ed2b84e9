package opentr

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
)

var (
	successEvent = log.String("event", "success")
	errorEvent   = log.String("event", "error")
)

// AddTenant configures span s to have the tenant tag set to the given tenant.
func AddTenant(s opentracing.Span, tenant string) {
	if tenant != "" {
		s.SetTag("tenant", tenant)
	}
}
