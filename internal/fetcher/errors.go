package fetcher

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred during a fetch operation
type ErrorType string

const (
	// ErrorTypeConfiguration indicates an unknown selector or a malformed argument
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeUpstream indicates the service answered with a non-success result code
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeTransport indicates a network-level failure or an unusable HTTP status
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeTypeCoercion indicates a declared column could not be converted
	ErrorTypeTypeCoercion ErrorType = "type_coercion"
)

// FetchError represents a structured error from a fetch operation.
// None of these errors are retried by this module.
type FetchError struct {
	Type       ErrorType
	StatusCode int
	// Code is the upstream result code for upstream errors
	Code string
	// Message is surfaced verbatim; for upstream errors it is the resultMsg
	Message string
	// Token is the period token or page number the error occurred on
	Token string
	// Column and Row locate a type coercion failure
	Column string
	Row    int
	Cause  error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	switch {
	case e.StatusCode > 0:
		msg = fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	case e.Code != "":
		msg = fmt.Sprintf("%s error (code %s): %s", e.Type, e.Code, e.Message)
	case e.Column != "":
		msg = fmt.Sprintf("%s error (column %s, row %d): %s", e.Type, e.Column, e.Row, e.Message)
	}
	if e.Token != "" {
		msg += " [" + e.Token + "]"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// WithToken returns a copy of the error annotated with the period or page it failed on
func (e *FetchError) WithToken(token string) *FetchError {
	cp := *e
	cp.Token = token
	return &cp
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewUpstreamError creates an upstream error carrying the service message verbatim
func NewUpstreamError(code, message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeUpstream,
		Code:    code,
		Message: message,
	}
}

// NewTransportError creates a transport error
func NewTransportError(cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTransport,
		Message: "request failed",
		Cause:   cause,
	}
}

// NewHTTPStatusError creates a transport error for a non-2xx response
// that carried no result envelope
func NewHTTPStatusError(statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeTransport,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("unexpected HTTP status %d", statusCode),
	}
}

// NewTypeCoercionError creates an error for a value that is not numeric after cleanup
func NewTypeCoercionError(column string, row int, value string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTypeCoercion,
		Column:  column,
		Row:     row,
		Message: fmt.Sprintf("cannot convert %q", value),
		Cause:   cause,
	}
}

// NewMissingFieldError creates an error for a required field absent from a record
func NewMissingFieldError(column string, row int) *FetchError {
	return &FetchError{
		Type:    ErrorTypeTypeCoercion,
		Column:  column,
		Row:     row,
		Message: "required field missing",
	}
}

// IsType reports whether err wraps a FetchError of the given type
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type == t
	}
	return false
}
