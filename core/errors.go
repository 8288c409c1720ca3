package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation is returned when no descriptor is registered under a name.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrNameResolution marks transport failures caused by an unresolvable
	// service endpoint. Match it with errors.Is on a *TransportError.
	ErrNameResolution = errors.New("service endpoint name resolution failed")

	// ErrCallLimitExceeded is returned by a limited Invoker once its call
	// budget is spent.
	ErrCallLimitExceeded = errors.New("call limit exceeded")
)

// MissingRequiredFieldError reports a required parameter that was not bound.
// It is raised before any request leaves the process.
type MissingRequiredFieldError struct {
	Operation string
	Field     string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %s", e.Operation, e.Field)
}

// InvalidSelectorError reports an output selector that cannot be applied to
// the operation.
type InvalidSelectorError struct {
	Operation string
	Selector  string
	Reason    string
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("%s: invalid selector %q: %s", e.Operation, e.Selector, e.Reason)
}

// TransportError wraps a network failure with a clarified diagnostic. The
// original failure stays reachable through Unwrap.
type TransportError struct {
	Operation string
	Endpoint  string
	Message   string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Err)
}

// Unwrap returns the original transport failure.
func (e *TransportError) Unwrap() error { return e.Err }

// Is reports ErrNameResolution for every TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrNameResolution }

// ServiceError is a non-success response returned by the remote service.
type ServiceError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s: service error (status %d", e.Operation, e.StatusCode)
	if e.Code != "" {
		msg += ", code " + e.Code
	}
	if e.RequestID != "" {
		msg += ", request id " + e.RequestID
	}
	msg += ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
