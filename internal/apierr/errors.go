// Package apierr defines the error classes surfaced by the HTTP layer and
// how they map to response statuses.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the response categories.
type Kind int

// Error kinds, in order of increasing severity.
const (
	// KindNotFound: a referenced entity is absent on read/update/delete.
	KindNotFound Kind = iota
	// KindConflict: a uniqueness invariant was violated (duplicate entity,
	// evaluation upsert race).
	KindConflict
	// KindConstraint: input outside its valid domain after clamping, or
	// malformed numeric input.
	KindConstraint
	// KindUpstreamUnavailable: the store is unreachable or overloaded; the
	// only class the aggregation core cannot recover from locally.
	KindUpstreamUnavailable
)

// Error carries a kind, a stable user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status the error maps to.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindConstraint:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error wrapping its cause.
func Conflict(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: err}
}

// Constraint builds a KindConstraint error.
func Constraint(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConstraint, Message: fmt.Sprintf(format, args...)}
}

// Upstream builds a KindUpstreamUnavailable error wrapping its cause.
func Upstream(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf(format, args...), Err: err}
}

// StatusFor resolves the response status for an arbitrary error, defaulting
// to 500 for anything outside the taxonomy.
func StatusFor(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status()
	}
	return http.StatusInternalServerError
}

// MessageFor returns the stable user-facing message for an error, or the
// fallback for errors outside the taxonomy (internal details are not leaked).
func MessageFor(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}

// IsKind reports whether err belongs to the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
