package options

import (
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/env"
)

// propertyVariables maps environment variables to the property they provide.
var propertyVariables = []struct {
	Variable string
	Property string
}{
	{"USERSTORE_BROKER_URL", BrokerEndpointProperty},
	{"USERSTORE_RETRY_LIMIT", RetryLimitProperty},
	{"USERSTORE_MESSAGE_LIFETIME", LifetimeProperty},
	{"USERSTORE_CONSUME_TIMEOUT", ConsumeTimeoutProperty},
}

// FromEnv returns store options with values read from environment variables.
//
// The environment variables are listed below.
//
// - USERSTORE_BROKER_URL          (string, validated on first use)
// - USERSTORE_RETRY_LIMIT         (integer, validated on first use)
// - USERSTORE_MESSAGE_LIFETIME    (duration in milliseconds, validated on first use)
// - USERSTORE_CONSUME_TIMEOUT     (duration in milliseconds, validated on first use)
// - USERSTORE_TENANT              (string)
// - USERSTORE_DOMAIN              (string)
// - USERSTORE_LOG_DEBUG           (boolean 'true' or 'false')
// - USERSTORE_AUTH_CACHE_TTL      (duration in milliseconds, non-zero)
// - USERSTORE_ATTRIBUTE_CACHE_TTL (duration in milliseconds, non-zero)
// - USERSTORE_PRODUCT             (string)
func FromEnv() ([]Option, error) {
	var o []Option

	for _, pv := range propertyVariables {
		if s, ok := env.String(pv.Variable); ok {
			o = append(o, Property(pv.Property, s))
		}
	}

	if s, ok := env.String("USERSTORE_TENANT"); ok {
		o = append(o, Tenant(s))
	}

	if s, ok := env.String("USERSTORE_DOMAIN"); ok {
		o = append(o, Domain(s))
	}

	debug, ok, err := env.Bool("USERSTORE_LOG_DEBUG")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, Logger(&twelf.StandardLogger{CaptureDebug: debug}))
	}

	t, ok, err := env.Duration("USERSTORE_AUTH_CACHE_TTL")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, AuthCache(DefaultCacheSize, t))
	}

	t, ok, err = env.Duration("USERSTORE_ATTRIBUTE_CACHE_TTL")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, AttributeCache(DefaultCacheSize, t))
	}

	if s, ok := env.String("USERSTORE_PRODUCT"); ok {
		o = append(o, Product(s))
	}

	return o, nil
}
