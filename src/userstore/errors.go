package userstore

import (
	"errors"
	"fmt"
	"time"
)

// IsTransportError returns true if err indicates a failure of the message
// broker, as opposed to a failure of the remote agent to answer.
func IsTransportError(err error) bool {
	return IsConnectionError(err) || IsPublishError(err)
}

// IsRemoteError returns true if err indicates that the remote agent could not
// be reached or did not produce a usable answer.
func IsRemoteError(err error) bool {
	return IsTransportError(err) || IsDecodeError(err) || IsTimeout(err)
}

// ConnectionError indicates a failure to connect to the message broker, to
// open a session on it, or to receive from it.
type ConnectionError struct {
	// Op is a short description of the broker operation that failed, such as
	// "dial" or "consume".
	Op    string
	Cause error
}

func (err ConnectionError) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("broker %s failed", err.Op)
	}

	return fmt.Sprintf("broker %s failed: %s", err.Op, err.Cause)
}

// Unwrap returns the underlying broker error.
func (err ConnectionError) Unwrap() error {
	return err.Cause
}

// IsConnectionError returns true if err is a ConnectionError.
func IsConnectionError(err error) bool {
	var e ConnectionError
	return errors.As(err, &e)
}

// PublishError indicates a failure to send a request message.
type PublishError struct {
	RequestType   RequestType
	CorrelationID string
	Cause         error
}

func (err PublishError) Error() string {
	return fmt.Sprintf(
		"can not publish '%s' request %s: %s",
		err.RequestType,
		err.CorrelationID,
		err.Cause,
	)
}

// Unwrap returns the underlying broker error.
func (err PublishError) Unwrap() error {
	return err.Cause
}

// IsPublishError returns true if err is a PublishError.
func IsPublishError(err error) bool {
	var e PublishError
	return errors.As(err, &e)
}

// DecodeError indicates that a response was received, but it, or the result
// it carries, is malformed.
type DecodeError struct {
	RequestType   RequestType
	CorrelationID string
	Reason        string
	Cause         error
}

func (err DecodeError) Error() string {
	msg := fmt.Sprintf("malformed '%s' response", err.RequestType)

	if err.CorrelationID != "" {
		msg += " " + err.CorrelationID
	}

	if err.Reason != "" {
		msg += ", " + err.Reason
	}

	if err.Cause != nil {
		msg += ": " + err.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying parser error, if any.
func (err DecodeError) Unwrap() error {
	return err.Cause
}

// IsDecodeError returns true if err is a DecodeError.
func IsDecodeError(err error) bool {
	var e DecodeError
	return errors.As(err, &e)
}

// TimeoutError indicates that no response was received within the consume
// timeout of any delivery attempt.
type TimeoutError struct {
	RequestType RequestType
	Attempts    int
	Timeout     time.Duration
}

func (err TimeoutError) Error() string {
	if err.Attempts <= 0 {
		return fmt.Sprintf(
			"'%s' request was not sent, retry limit does not permit any attempts",
			err.RequestType,
		)
	}

	return fmt.Sprintf(
		"'%s' request timed out after %d attempt(s) of %s each",
		err.RequestType,
		err.Attempts,
		err.Timeout,
	)
}

// IsTimeout returns true if err is a TimeoutError.
func IsTimeout(err error) bool {
	var e TimeoutError
	return errors.As(err, &e)
}

// UnsupportedOperationError indicates an attempt to perform an operation that
// the store does not offer, such as any mutation.
type UnsupportedOperationError struct {
	Operation string
}

func (err UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported by the outbound user store", err.Operation)
}

// IsUnsupported returns true if err is an UnsupportedOperationError.
func IsUnsupported(err error) bool {
	var e UnsupportedOperationError
	return errors.As(err, &e)
}

// ConfigError indicates that a required configuration property is missing or
// invalid.
type ConfigError struct {
	Property string
	Reason   string
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("configuration property '%s' %s", err.Property, err.Reason)
}

// IsConfigError returns true if err is a ConfigError.
func IsConfigError(err error) bool {
	var e ConfigError
	return errors.As(err, &e)
}
