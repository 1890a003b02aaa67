// Package apperr defines the closed set of domain errors surfaced by the
// employee facade. Every failure leaving the facade is an *Error whose Kind
// is one of the constants below; callers branch on Kind, never on message
// text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind is the classification of a domain error.
type Kind int

const (
	// KindInternal is the zero value so an unclassified error is never
	// mistaken for a more specific kind.
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindRateLimited
	KindUpstream
)

var kindNames = map[Kind]string{
	KindInternal:    "internal",
	KindValidation:  "validation",
	KindNotFound:    "not_found",
	KindRateLimited: "rate_limited",
	KindUpstream:    "upstream",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// HTTPStatus is the status the routing layer answers with for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single concrete domain error type.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode is the upstream HTTP status for KindUpstream (and the
	// status-specific kinds); 0 when no response was received.
	StatusCode int

	// RetryAfter is the upstream hint for KindRateLimited. Reported only.
	RetryAfter time.Duration

	// Fields holds per-field messages for KindValidation.
	Fields map[string]string

	// Tag marks how an internal error was produced ("connection", "unexpected").
	Tag string

	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Kind == KindUpstream && e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus returns the status the routing layer should answer with.
func (e *Error) HTTPStatus() int { return e.Kind.HTTPStatus() }

// Code is the stable machine-facing code, e.g. "employee.not_found".
func (e *Error) Code() string { return "employee." + e.Kind.String() }

const (
	msgNotFound    = "Employee not found."
	msgRateLimited = "Too many requests. Please try again later."
	msgUpstream    = "Upstream employee service error."
	msgInternal    = "Internal Server Error."
	msgValidation  = "Validation failed for one or more input fields"
)

// Tags for KindInternal errors.
const (
	TagConnection = "connection"
	TagUnexpected = "unexpected"
)

func NotFound(cause error) *Error {
	return &Error{Kind: KindNotFound, Message: msgNotFound, StatusCode: http.StatusNotFound, Cause: cause}
}

func RateLimited(retryAfter time.Duration, cause error) *Error {
	return &Error{Kind: KindRateLimited, Message: msgRateLimited, StatusCode: http.StatusTooManyRequests, RetryAfter: retryAfter, Cause: cause}
}

func Upstream(statusCode int, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msgUpstream, StatusCode: statusCode, Cause: cause}
}

// Internal wraps a failure where no usable response reached the client
// (TagConnection) or anything else unexpected (TagUnexpected).
func Internal(tag string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Tag: tag, Cause: cause}
}

// Validation is raised by the routing layer only; the facade never returns it.
func Validation(message string, fields map[string]string) *Error {
	if message == "" {
		message = msgValidation
	}
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// Ensure converts any error to *Error; nil stays nil.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return Internal(TagUnexpected, err)
}
