// Package props resolves the user store properties that are required before
// a remote call can be made.
package props

import (
	"strconv"
	"strings"
	"time"

	"github.com/rinq/userstore-go/src/userstore"
	"github.com/rinq/userstore-go/src/userstore/options"
)

// Settings is the resolved form of the required properties.
type Settings struct {
	// BrokerURL is the URL of the message broker.
	BrokerURL string

	// RetryLimit is the maximum number of delivery attempts. A value of zero
	// or less permits no attempts at all.
	RetryLimit int

	// MessageLifetime is the time-to-live of each request message. Zero means
	// the messages never expire.
	MessageLifetime time.Duration

	// ConsumeTimeout is the time to wait for a response to each attempt.
	ConsumeTimeout time.Duration
}

// Resolve parses the required properties from p.
//
// It returns a userstore.ConfigError describing the first property that is
// missing or malformed.
func Resolve(p map[string]string) (s Settings, err error) {
	s.BrokerURL, err = str(p, options.BrokerEndpointProperty)
	if err != nil {
		return
	}

	s.RetryLimit, err = integer(p, options.RetryLimitProperty)
	if err != nil {
		return
	}

	s.MessageLifetime, err = millis(p, options.LifetimeProperty)
	if err != nil {
		return
	}

	s.ConsumeTimeout, err = millis(p, options.ConsumeTimeoutProperty)
	if err != nil {
		return
	}

	if s.ConsumeTimeout == 0 {
		err = userstore.ConfigError{
			Property: options.ConsumeTimeoutProperty,
			Reason:   "must be greater than zero",
		}
	}

	return
}

func str(p map[string]string, k string) (string, error) {
	v := strings.TrimSpace(p[k])
	if v == "" {
		return "", userstore.ConfigError{Property: k, Reason: "is missing"}
	}

	return v, nil
}

func integer(p map[string]string, k string) (int, error) {
	v, err := str(p, k)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, userstore.ConfigError{
			Property: k,
			Reason:   "must be an integer, got '" + v + "'",
		}
	}

	return n, nil
}

func millis(p map[string]string, k string) (time.Duration, error) {
	v, err := str(p, k)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return 0, userstore.ConfigError{
			Property: k,
			Reason:   "must be a non-negative duration in milliseconds, got '" + v + "'",
		}
	}

	return time.Duration(n) * time.Millisecond, nil
}
