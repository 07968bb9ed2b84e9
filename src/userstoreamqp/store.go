// Package userstoreamqp provides a user store whose lookups are answered by a
// remote agent over an AMQP broker.
package userstoreamqp

import (
	"github.com/rinq/userstore-go/src/internal/amqpx"
	"github.com/rinq/userstore-go/src/internal/cache"
	"github.com/rinq/userstore-go/src/internal/directory"
	"github.com/rinq/userstore-go/src/internal/metrics"
	"github.com/rinq/userstore-go/src/internal/rpc"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/rinq/userstore-go/src/userstore"
	"github.com/rinq/userstore-go/src/userstore/options"
	"github.com/streadway/amqp"
)

// Dialer creates user stores that connect to the broker with a specific AMQP
// configuration.
type Dialer struct {
	// Configuration for the underlying AMQP connections.
	AMQPConfig amqp.Config
}

// NewStore returns a user store that uses the default AMQP configuration.
//
// The broker is not contacted until the first lookup. The broker URL, retry
// limit and timeouts are taken from the user store properties, which are also
// validated on first use.
func NewStore(opts ...options.Option) (userstore.Store, error) {
	d := Dialer{}
	return d.NewStore(opts...)
}

// NewStoreEnv returns a user store configured from environment variables, as
// per options.FromEnv().
func NewStoreEnv(opts ...options.Option) (userstore.Store, error) {
	env, err := options.FromEnv()
	if err != nil {
		return nil, err
	}

	return NewStore(append(env, opts...)...)
}

// NewStore returns a user store that uses d's AMQP configuration.
func (d *Dialer) NewStore(opts ...options.Option) (userstore.Store, error) {
	o, err := options.NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return newStore(
		&amqpx.Dialer{
			Product:    o.Product,
			AMQPConfig: d.AMQPConfig,
			Logger:     o.Logger,
		},
		o,
	)
}

// newStore returns a user store that connects to the broker using d.
func newStore(d transport.Dialer, o options.Options) (userstore.Store, error) {
	m, err := metrics.New(o.Metrics)
	if err != nil {
		return nil, err
	}

	ch := &rpc.Channel{
		Dialer:              d,
		Properties:          o.Properties,
		Tenant:              o.Tenant,
		Domain:              o.Domain,
		RequestTopic:        o.RequestTopic,
		ResponseQueuePrefix: o.ResponseQueuePrefix,
		Logger:              o.Logger,
		Tracer:              o.Tracer,
		Metrics:             m,
	}

	logCreated(o)

	return directory.NewStore(
		ch,
		directory.Config{
			Tenant:        o.Tenant,
			Domain:        o.Domain,
			AnonymousUser: o.AnonymousUser,
			Attributes:    o.Attributes,
			Logger:        o.Logger,
			Metrics:       m,
		},
		cache.NewAuthCache(o.AuthCacheSize, o.AuthCacheTTL),
		cache.NewAttributeCache(o.AttributeCacheSize, o.AttributeCacheTTL),
	), nil
}
