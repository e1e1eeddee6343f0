// Package errors defines the domain error taxonomy shared by services and the
// HTTP layer. Services wrap infrastructure failures with a code; the transport
// layer translates codes to statuses without inspecting underlying causes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	// CodeBadRequest covers validation failures; the message is safe to show.
	CodeBadRequest Code = "bad_request"
	// CodeRateLimited signals the caller exhausted its request window.
	CodeRateLimited Code = "rate_limited"
	// CodeDuplicateEmail signals the email is already registered.
	CodeDuplicateEmail Code = "duplicate_email"
	// CodeUnauthorized covers failed authentication.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound signals a missing entity.
	CodeNotFound Code = "not_found"
	// CodeProvider covers identity provider failures. Details stay server-side.
	CodeProvider Code = "provider_error"
	// CodeStorage covers record store failures. Details stay server-side.
	CodeStorage Code = "storage_error"
	// CodeInternal is the catch-all for unexpected failures.
	CodeInternal Code = "internal_error"
)

// DomainError carries a code, a message, and an optional wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a DomainError without a cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the user-facing message, empty when err is not a DomainError.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP status class.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeDuplicateEmail:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeProvider, CodeStorage, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
