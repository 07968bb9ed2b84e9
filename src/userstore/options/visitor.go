package options

import (
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
)

// The defaults applied by Apply().
const (
	DefaultDomain              = "PRIMARY"
	DefaultAnonymousUser       = "wso2.anonymous.user"
	DefaultRequestTopic        = "userstore.requests"
	DefaultResponseQueuePrefix = "userstore.response"
	DefaultCacheSize           = 10000
	DefaultCacheTTL            = 15 * time.Minute
)

// visitor handles the application of options.
type visitor interface {
	applyProperty(string, string) error
	applyTenant(string) error
	applyDomain(string) error
	applyAnonymousUser(string) error
	applyRequestTopic(string) error
	applyResponseQueuePrefix(string) error
	applyAttributes([]string) error
	applyAuthCache(int, time.Duration) error
	applyAttributeCache(int, time.Duration) error
	applyLogger(twelf.Logger) error
	applyTracer(opentracing.Tracer) error
	applyMetrics(prometheus.Registerer) error
	applyProduct(string) error
}

// Apply applies the default options, then a sequence of additional options to v.
func Apply(v visitor, opts ...Option) error {
	if err := v.applyDomain(DefaultDomain); err != nil {
		return err
	}

	if err := v.applyAnonymousUser(DefaultAnonymousUser); err != nil {
		return err
	}

	if err := v.applyRequestTopic(DefaultRequestTopic); err != nil {
		return err
	}

	if err := v.applyResponseQueuePrefix(DefaultResponseQueuePrefix); err != nil {
		return err
	}

	if err := v.applyAuthCache(DefaultCacheSize, DefaultCacheTTL); err != nil {
		return err
	}

	if err := v.applyAttributeCache(DefaultCacheSize, DefaultCacheTTL); err != nil {
		return err
	}

	if err := v.applyLogger(defaultLogger); err != nil {
		return err
	}

	if err := v.applyTracer(opentracing.NoopTracer{}); err != nil {
		return err
	}

	for _, o := range opts {
		if err := o(v); err != nil {
			return err
		}
	}

	return nil
}

var defaultLogger twelf.Logger

func init() {
	defaultLogger = &twelf.StandardLogger{}
}
