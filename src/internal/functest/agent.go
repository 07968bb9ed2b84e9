// Package functest provides helpers for functional tests that exercise the
// user store against a real AMQP broker.
package functest

import (
	"context"
	"sync"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/agent"
	"github.com/rinq/userstore-go/src/internal/amqptest"
	"github.com/rinq/userstore-go/src/internal/amqpx"
	"github.com/rinq/userstore-go/src/userstore"
	"github.com/rinq/userstore-go/src/userstore/options"
	"github.com/rinq/userstore-go/src/userstoreamqp"
)

var agents struct {
	mutex sync.Mutex
	wg    sync.WaitGroup
	stop  []func()
}

// StartAgent starts an agent that answers requests published to topic from
// the directory fixture at path. It panics if no broker is configured.
func StartAgent(topic, path string) {
	dsn, ok := amqptest.DSN()
	if !ok {
		panic(amqptest.DSNVariable + " is not set")
	}

	dir, err := agent.LoadDirectoryFile(path)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &amqpx.Dialer{Product: "functest-agent"}
	sub, err := d.Subscribe(ctx, dsn, topic, "#", 10)
	if err != nil {
		cancel()
		panic(err)
	}

	a := &agent.Agent{
		Directory: dir,
		Logger:    &twelf.StandardLogger{},
	}

	agents.mutex.Lock()
	defer agents.mutex.Unlock()

	agents.stop = append(agents.stop, cancel)
	agents.wg.Add(1)

	go func() {
		defer agents.wg.Done()
		defer sub.Close()

		_ = a.Run(ctx, sub)
	}()
}

// NewStore returns a user store that publishes requests to topic on the
// broker used for functional tests.
func NewStore(topic string, opts ...options.Option) userstore.Store {
	dsn, ok := amqptest.DSN()
	if !ok {
		panic(amqptest.DSNVariable + " is not set")
	}

	store, err := userstoreamqp.NewStore(
		append(
			[]options.Option{
				options.Property(options.BrokerEndpointProperty, dsn),
				options.Property(options.RetryLimitProperty, "3"),
				options.Property(options.LifetimeProperty, "10000"),
				options.Property(options.ConsumeTimeoutProperty, "1000"),
				options.RequestTopic(topic),
				options.Product("functest"),
			},
			opts...,
		)...,
	)
	if err != nil {
		panic(err)
	}

	return store
}

// TearDown stops all agents started by StartAgent().
func TearDown() {
	agents.mutex.Lock()
	stop := agents.stop
	agents.stop = nil
	agents.mutex.Unlock()

	for _, fn := range stop {
		fn()
	}

	agents.wg.Wait()
}
