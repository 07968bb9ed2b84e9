// Package metrics defines the Prometheus collectors that track remote calls
// and cache use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// The outcomes of a remote call.
const (
	OutcomeSuccess        = "success"
	OutcomeTimeout        = "timeout"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
	OutcomeConfigError    = "config_error"
	OutcomeCanceled       = "canceled"
)

// The results of a cache lookup.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheEvict = "evict"
)

// The names of the caches.
const (
	AuthCache      = "auth"
	AttributeCache = "attribute"
)

// Collectors is the set of collectors used by a single store.
type Collectors struct {
	// Attempts tracks the number of delivery attempts by request type.
	Attempts *prometheus.CounterVec

	// Calls tracks completed remote calls by request type and outcome.
	Calls *prometheus.CounterVec

	// CallDuration tracks the duration of remote calls by request type.
	CallDuration *prometheus.HistogramVec

	// CacheLookups tracks cache lookups by cache and result.
	CacheLookups *prometheus.CounterVec
}

// New returns a new set of collectors. If r is non-nil the collectors are
// registered with it.
func New(r prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userstore",
				Name:      "rpc_attempts_total",
				Help:      "Total number of request delivery attempts by request type",
			},
			[]string{"request_type"},
		),
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userstore",
				Name:      "rpc_calls_total",
				Help:      "Total number of completed remote calls by request type and outcome",
			},
			[]string{"request_type", "outcome"},
		),
		CallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "userstore",
				Name:      "rpc_call_duration_seconds",
				Help:      "Remote call duration in seconds, including every attempt",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"request_type"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userstore",
				Name:      "cache_lookups_total",
				Help:      "Total number of cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
	}

	if r == nil {
		return c, nil
	}

	var err error
	for _, col := range []prometheus.Collector{
		c.Attempts,
		c.Calls,
		c.CallDuration,
		c.CacheLookups,
	} {
		err = multierr.Append(err, r.Register(col))
	}

	return c, err
}

// Attempt records a delivery attempt.
func (c *Collectors) Attempt(requestType string) {
	c.Attempts.WithLabelValues(requestType).Inc()
}

// Call records a completed remote call.
func (c *Collectors) Call(requestType, outcome string, d time.Duration) {
	c.Calls.WithLabelValues(requestType, outcome).Inc()
	c.CallDuration.WithLabelValues(requestType).Observe(d.Seconds())
}

// Lookup records the result of a cache lookup.
func (c *Collectors) Lookup(cache, result string) {
	c.CacheLookups.WithLabelValues(cache, result).Inc()
}
