// Package apperrors defines the typed failure taxonomy shared by the
// service layer. Services return these errors; only the HTTP layer
// translates them into transport-level responses.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of transport.
type Kind int

const (
	// KindInternal is any uncaught fault. Callers must not see its detail.
	KindInternal Kind = iota
	// KindNotFound means an entity is absent by id or slug.
	KindNotFound
	// KindAlreadyExists means a unique-field collision was detected.
	KindAlreadyExists
	// KindValidation means a field-level rule was violated.
	KindValidation
	// KindUnauthenticated means no, invalid, or expired credentials.
	KindUnauthenticated
	// KindForbidden means the caller is authenticated but lacks privilege.
	KindForbidden
)

// Error is a typed failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Err holds the underlying cause, if any. Never exposed to callers.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports an absent entity, e.g. NotFound("Blog post", "slug 'x'").
func NotFound(resource, identifier string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with %s not found", resource, identifier),
	}
}

// AlreadyExists reports a unique-field collision.
func AlreadyExists(resource, field, value string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Message: fmt.Sprintf("%s with %s '%s' already exists", resource, field, value),
	}
}

// Validation reports a field-level rule violation.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthenticated reports missing or bad credentials.
func Unauthenticated(message string) *Error {
	if message == "" {
		message = "Could not validate credentials"
	}
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports insufficient privilege.
func Forbidden(message string) *Error {
	if message == "" {
		message = "Admin privileges required"
	}
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unexpected fault. The cause is kept for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf extracts the Kind from err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err. Untyped errors
// always map to the generic internal message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
