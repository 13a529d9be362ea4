package domain

import (
	"errors"
	"fmt"
)

// Service-level error kinds. Match them with errors.Is.
var (
	// ErrUserInput means the end user must correct the address. The message of
	// the wrapping ServiceError is safe to show verbatim.
	ErrUserInput = errors.New("invalid address input")
	// ErrServiceUnavailable means a transient provider or storage failure.
	ErrServiceUnavailable = errors.New("address service unavailable")
	// ErrConfiguration means the service is missing provider credentials.
	ErrConfiguration = errors.New("address service misconfigured")
)

// ServiceError carries a service-level kind plus a message and the
// underlying cause.
type ServiceError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewUserInputError builds an ErrUserInput ServiceError.
func NewUserInputError(msg string, err error) *ServiceError {
	return &ServiceError{Kind: ErrUserInput, Message: msg, Err: err}
}

// NewUnavailableError builds an ErrServiceUnavailable ServiceError.
func NewUnavailableError(msg string, err error) *ServiceError {
	return &ServiceError{Kind: ErrServiceUnavailable, Message: msg, Err: err}
}

// NewConfigurationError builds an ErrConfiguration ServiceError.
func NewConfigurationError(msg string, err error) *ServiceError {
	return &ServiceError{Kind: ErrConfiguration, Message: msg, Err: err}
}

// UserMessage returns the end-user message of a user input error, or "" when
// err is not one.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && errors.Is(se.Kind, ErrUserInput) {
		return se.Message
	}
	return ""
}

// GeocodeFailure classifies why the geocoding provider could not answer.
type GeocodeFailure int

const (
	FailureNotFound GeocodeFailure = iota + 1
	FailureInvalidInput
	FailureProviderMisconfigured
	FailureQuotaExceeded
	FailureUnavailable
)

func (f GeocodeFailure) String() string {
	switch f {
	case FailureNotFound:
		return "not_found"
	case FailureInvalidInput:
		return "invalid_input"
	case FailureProviderMisconfigured:
		return "provider_misconfigured"
	case FailureQuotaExceeded:
		return "quota_exceeded"
	case FailureUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// GeocodeError is returned by geocoder implementations. Status holds the raw
// provider status, if any.
type GeocodeError struct {
	Failure GeocodeFailure
	Status  string
	Message string
	Err     error
}

func (e *GeocodeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "geocode failed"
	}
	if e.Status != "" {
		msg = fmt.Sprintf("%s (status=%s)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Failure, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Failure, msg)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// AsGeocodeError attempts to unwrap an error into a GeocodeError.
func AsGeocodeError(err error) (*GeocodeError, bool) {
	var ge *GeocodeError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
