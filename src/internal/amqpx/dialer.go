// Package amqpx implements the broker transport on top of an AMQP 0-9-1
// broker.
package amqpx

import (
	"context"
	"fmt"
	"net"
	"os"
	"path"

	version "github.com/hashicorp/go-version"
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/rinq/userstore-go/src/internal/transport"
	"github.com/streadway/amqp"
)

// DefaultURL is the broker URL used when an empty URL is passed to Dial().
const DefaultURL = "amqp://localhost"

// Dialer connects to an AMQP broker.
type Dialer struct {
	// Product is reported to the broker as the client product name. If it is
	// empty the executable name is used.
	Product string

	// Configuration for the underlying AMQP connection.
	AMQPConfig amqp.Config

	Logger twelf.Logger
}

// Dial connects to the AMQP broker at url.
func (d *Dialer) Dial(ctx context.Context, url string) (transport.Connection, error) {
	if url == "" {
		url = DefaultURL
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := d.AMQPConfig

	if cfg.Properties == nil {
		product := d.Product
		if product == "" {
			product = path.Base(os.Args[0])
		}

		cfg.Properties = amqp.Table{
			"product": product,
			"version": "userstore-go/0.0.0",
		}
	}

	if cfg.Dial == nil {
		cfg.Dial = func(network, addr string) (net.Conn, error) {
			var nd net.Dialer
			return nd.DialContext(ctx, network, addr)
		}
	}

	broker, err := amqp.DialConfig(url, cfg)
	if err != nil {
		return nil, err
	}

	if err := checkCapabilities(broker.Properties); err != nil {
		_ = broker.Close()
		return nil, err
	}

	logConnected(d.logger(), url, broker.Properties)

	return &connection{
		broker: broker,
		logger: d.logger(),
	}, nil
}

func (d *Dialer) logger() twelf.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	return &twelf.StandardLogger{}
}

// checkCapabilities returns an error if the broker described by props is not
// supported.
func checkCapabilities(props amqp.Table) error {
	product, _ := props["product"].(string)

	ver, _ := props["version"].(string)
	semver, err := version.NewVersion(ver)
	if err != nil {
		return err
	}

	var minVersion *version.Version

	switch product {
	case "RabbitMQ":
		// minimum of 3.5.0 is required for the x-expires queue argument to be
		// applied to exclusive queues
		minVersion = version.Must(version.NewVersion("3.5.0"))
	default:
		return fmt.Errorf("unsupported AMQP broker: %s", product)
	}

	if semver.LessThan(minVersion) {
		return fmt.Errorf(
			"unsupported AMQP broker: %s %s, minimum version is %s",
			product,
			semver.String(),
			minVersion.String(),
		)
	}

	return nil
}

type connection struct {
	broker *amqp.Connection
	logger twelf.Logger
}

func (c *connection) Session() (transport.Session, error) {
	ch, err := c.broker.Channel()
	if err != nil {
		return nil, err
	}

	return &session{
		channel: ch,
		logger:  c.logger,
	}, nil
}

func (c *connection) Close() error {
	err := c.broker.Close()
	if err == amqp.ErrClosed {
		return nil
	}

	return err
}
