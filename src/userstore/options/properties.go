package options

// The names of the properties that must be present before any remote call can
// be made.
const (
	// BrokerEndpointProperty is the URL of the message broker.
	BrokerEndpointProperty = "MessageBrokerEndpoint"

	// RetryLimitProperty is the maximum number of delivery attempts made for
	// each remote call.
	RetryLimitProperty = "MessageRetryLimit"

	// LifetimeProperty is the time-to-live of each request message, in
	// milliseconds.
	LifetimeProperty = "MessageLifetime"

	// ConsumeTimeoutProperty is the time to wait for a response to each
	// delivery attempt, in milliseconds.
	ConsumeTimeoutProperty = "MessageConsumeTimeout"
)

// RequiredProperties is the list of properties that must be present before
// any remote call can be made.
var RequiredProperties = []string{
	BrokerEndpointProperty,
	RetryLimitProperty,
	LifetimeProperty,
	ConsumeTimeoutProperty,
}
