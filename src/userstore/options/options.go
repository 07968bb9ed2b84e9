package options

import (
	"errors"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Options is a structure representing a resolved set of options.
type Options struct {
	Properties          map[string]string
	Tenant              string
	Domain              string
	AnonymousUser       string
	RequestTopic        string
	ResponseQueuePrefix string
	Attributes          []string
	AuthCacheSize       int
	AuthCacheTTL        time.Duration
	AttributeCacheSize  int
	AttributeCacheTTL   time.Duration
	Logger              twelf.Logger
	Tracer              opentracing.Tracer
	Metrics             prometheus.Registerer
	Product             string
}

// NewOptions returns a new Options object from the given options, with default
// values for any options that are not specified.
func NewOptions(opts ...Option) (o Options, err error) {
	err = Apply(&o, opts...)
	return
}

// applyProperty sets a single entry of the Properties value.
func (o *Options) applyProperty(k, v string) error {
	if k == "" {
		return errors.New("property name must not be empty")
	}

	if o.Properties == nil {
		o.Properties = map[string]string{}
	}

	o.Properties[k] = v
	return nil
}

// applyTenant sets the Tenant value.
func (o *Options) applyTenant(v string) error {
	o.Tenant = v
	return nil
}

// applyDomain sets the Domain value.
func (o *Options) applyDomain(v string) error {
	o.Domain = v
	return nil
}

// applyAnonymousUser sets the AnonymousUser value.
func (o *Options) applyAnonymousUser(v string) error {
	o.AnonymousUser = v
	return nil
}

// applyRequestTopic sets the RequestTopic value.
func (o *Options) applyRequestTopic(v string) error {
	if v == "" {
		return errors.New("request topic must not be empty")
	}

	o.RequestTopic = v
	return nil
}

// applyResponseQueuePrefix sets the ResponseQueuePrefix value.
func (o *Options) applyResponseQueuePrefix(v string) error {
	if v == "" {
		return errors.New("response queue prefix must not be empty")
	}

	o.ResponseQueuePrefix = v
	return nil
}

// applyAttributes sets the Attributes value.
func (o *Options) applyAttributes(v []string) error {
	o.Attributes = append([]string(nil), v...)
	return nil
}

// applyAuthCache sets the AuthCacheSize and AuthCacheTTL values.
func (o *Options) applyAuthCache(size int, ttl time.Duration) error {
	if size <= 0 {
		return errors.New("authentication cache size must be positive")
	}

	o.AuthCacheSize = size
	o.AuthCacheTTL = ttl
	return nil
}

// applyAttributeCache sets the AttributeCacheSize and AttributeCacheTTL values.
func (o *Options) applyAttributeCache(size int, ttl time.Duration) error {
	if size <= 0 {
		return errors.New("attribute cache size must be positive")
	}

	o.AttributeCacheSize = size
	o.AttributeCacheTTL = ttl
	return nil
}

// applyLogger sets the Logger value.
func (o *Options) applyLogger(v twelf.Logger) error {
	if v == nil {
		panic("logger must not be nil")
	}

	o.Logger = v
	return nil
}

// applyTracer sets the Tracer value.
func (o *Options) applyTracer(v opentracing.Tracer) error {
	if v == nil {
		panic("tracer must not be nil")
	}

	o.Tracer = v
	return nil
}

// applyMetrics sets the Metrics value.
func (o *Options) applyMetrics(v prometheus.Registerer) error {
	o.Metrics = v
	return nil
}

// applyProduct sets the Product value.
func (o *Options) applyProduct(v string) error {
	o.Product = v
	return nil
}
