// Package apperr defines the error kinds surfaced by the HTTP services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category returned to API callers.
type Kind string

const (
	KindUnsupportedFormat     Kind = "UNSUPPORTED_FORMAT"
	KindExtractionFailed      Kind = "EXTRACTION_FAILED"
	KindNoJSONFound           Kind = "NO_JSON_FOUND"
	KindInvalidJSON           Kind = "INVALID_JSON"
	KindDownstreamUnavailable Kind = "DOWNSTREAM_UNAVAILABLE"
	KindNotificationFailed    Kind = "NOTIFICATION_FAILED"
	KindInvalidBody           Kind = "INVALID_BODY"
	KindInternal              Kind = "INTERNAL_ERROR"
)

// Error carries a Kind alongside a caller-safe message and an optional cause.
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

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error without an underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an *Error wrapping err.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps a Kind to the status code used at the route boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnsupportedFormat, KindExtractionFailed, KindInvalidBody:
		return http.StatusBadRequest
	case KindNoJSONFound, KindInvalidJSON, KindDownstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
