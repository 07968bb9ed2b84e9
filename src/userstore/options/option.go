package options

import (
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Option is a function that applies a configuration change.
type Option func(v visitor) error

// Property returns an Option that sets a single user store property, such as
// BrokerEndpointProperty.
//
// Property values are not validated until they are first used.
func Property(k, v string) Option {
	return func(vis visitor) error {
		return vis.applyProperty(k, v)
	}
}

// Properties returns an Option that sets several user store properties at
// once. It does not remove properties that have already been set.
func Properties(p map[string]string) Option {
	return func(v visitor) error {
		for k, val := range p {
			if err := v.applyProperty(k, val); err != nil {
				return err
			}
		}

		return nil
	}
}

// Tenant returns an Option that specifies the tenant on whose behalf requests
// are made. It is sent with every request and used as the routing key prefix.
func Tenant(t string) Option {
	return func(v visitor) error {
		return v.applyTenant(t)
	}
}

// Domain returns an Option that specifies the user store domain. Names
// returned by the remote agent are qualified with this domain unless it is the
// primary domain.
func Domain(d string) Option {
	return func(v visitor) error {
		return v.applyDomain(d)
	}
}

// AnonymousUser returns an Option that specifies the name of the anonymous
// user. This name is never qualified with the domain.
func AnonymousUser(n string) Option {
	return func(v visitor) error {
		return v.applyAnonymousUser(n)
	}
}

// RequestTopic returns an Option that specifies the name of the topic to which
// requests are published.
func RequestTopic(n string) Option {
	return func(v visitor) error {
		return v.applyRequestTopic(n)
	}
}

// ResponseQueuePrefix returns an Option that specifies the prefix used when
// naming the per-attempt response queues.
func ResponseQueuePrefix(p string) Option {
	return func(v visitor) error {
		return v.applyResponseQueuePrefix(p)
	}
}

// Attributes returns an Option that specifies the complete list of attribute
// names requested whenever a user's attributes are fetched. An empty list
// requests every attribute the agent knows about.
func Attributes(names ...string) Option {
	return func(v visitor) error {
		return v.applyAttributes(names)
	}
}

// AuthCache returns an Option that specifies the capacity and time-to-live of
// the authentication cache.
func AuthCache(size int, ttl time.Duration) Option {
	return func(v visitor) error {
		return v.applyAuthCache(size, ttl)
	}
}

// AttributeCache returns an Option that specifies the capacity and
// time-to-live of the attribute cache.
func AttributeCache(size int, ttl time.Duration) Option {
	return func(v visitor) error {
		return v.applyAttributeCache(size, ttl)
	}
}

// Logger returns an Option that specifies the target for all of the store's
// logs.
func Logger(l twelf.Logger) Option {
	return func(v visitor) error {
		return v.applyLogger(l)
	}
}

// Tracer returns an Option that specifies an OpenTracing tracer to use for
// tracking remote calls.
//
// See http://opentracing.io for more information.
func Tracer(t opentracing.Tracer) Option {
	return func(v visitor) error {
		return v.applyTracer(t)
	}
}

// Metrics returns an Option that specifies the Prometheus registerer with
// which the store's collectors are registered.
func Metrics(r prometheus.Registerer) Option {
	return func(v visitor) error {
		return v.applyMetrics(r)
	}
}

// Product returns an Option that specifies an application-defined string that
// identifies the application.
//
// It is recommended that the product take the form "<product>/<version>"
// such as "my-app/1.3.0".
func Product(p string) Option {
	return func(v visitor) error {
		return v.applyProduct(p)
	}
}
