package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a client failure.
type ErrorKind int

const (
	// TransportError is a network failure, a non-2xx status or a non-JSON body.
	TransportError ErrorKind = iota
	// ExchangeError is an HTTP success whose body carries a non-empty error list.
	ExchangeError
	// NotFoundError means the requested pair was absent from a successful response.
	NotFoundError
	// ConfigurationError means credentials were missing or unusable for signing.
	ConfigurationError
)

// String returns a string representation of the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case TransportError:
		return "Transport error"
	case ExchangeError:
		return "Exchange error"
	case NotFoundError:
		return "Not found"
	case ConfigurationError:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// Error is the client's error type. APIErrors holds the raw error payload from
// the exchange, untouched, so callers can surface it verbatim.
type Error struct {
	Kind      ErrorKind
	Message   string
	APIErrors []string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if len(e.APIErrors) > 0 {
		msg += ": " + strings.Join(e.APIErrors, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the root cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func newTransportError(message string, err error) *Error {
	return &Error{Kind: TransportError, Message: message, Err: err}
}

func newExchangeError(message string, apiErrors []string) *Error {
	return &Error{Kind: ExchangeError, Message: message, APIErrors: apiErrors}
}

func newNotFoundError(message string) *Error {
	return &Error{Kind: NotFoundError, Message: message}
}

func newConfigurationError(message string, err error) *Error {
	return &Error{Kind: ConfigurationError, Message: message, Err: err}
}
