package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error for HTTP-status mapping and log routing.
type ErrorKind string

const (
	// ErrInvalidRequest covers malformed request bodies (missing email field,
	// unparseable JSON) — distinct from ErrInvalidFormat, which is a
	// well-formed request carrying a malformed email address.
	ErrInvalidRequest ErrorKind = "invalid_request"
	// ErrInvalidFormat marks an email that fails RFC 5321 shape validation.
	ErrInvalidFormat ErrorKind = "invalid_format"
	// ErrInvalidConfig marks a configuration document or patch that fails
	// validation (weights not summing to 1, thresholds out of order, etc).
	ErrInvalidConfig ErrorKind = "invalid_config"
	// ErrStoreUnavailable marks a KV store operation that could not complete.
	ErrStoreUnavailable ErrorKind = "store_unavailable"
	// ErrUpstreamUnavailable marks a refresh-source fetch or origin-forward
	// failure.
	ErrUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// ErrInternal covers anything else — a bug, not a caller mistake.
	ErrInternal ErrorKind = "internal"
)

// Error is the single error type threaded through every layer of the
// pipeline. Kind drives both the cmd/edge-validator HTTP status mapping and
// the cmd/validate-cli exit code; Err, when set, is the wrapped cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidRequest builds an ErrInvalidRequest Error.
func NewInvalidRequest(message string) *Error {
	return &Error{Kind: ErrInvalidRequest, Message: message}
}

// NewInvalidFormat builds an ErrInvalidFormat Error.
func NewInvalidFormat(message string) *Error {
	return &Error{Kind: ErrInvalidFormat, Message: message}
}

// NewInvalidConfig builds an ErrInvalidConfig Error, optionally wrapping cause.
func NewInvalidConfig(message string, cause error) *Error {
	return &Error{Kind: ErrInvalidConfig, Message: message, Err: cause}
}

// NewStoreUnavailable builds an ErrStoreUnavailable Error wrapping cause.
func NewStoreUnavailable(message string, cause error) *Error {
	return &Error{Kind: ErrStoreUnavailable, Message: message, Err: cause}
}

// NewUpstreamUnavailable builds an ErrUpstreamUnavailable Error wrapping cause.
func NewUpstreamUnavailable(message string, cause error) *Error {
	return &Error{Kind: ErrUpstreamUnavailable, Message: message, Err: cause}
}

// NewInternal builds an ErrInternal Error wrapping cause.
func NewInternal(message string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: message, Err: cause}
}

// KindOf unwraps err looking for a *Error and returns its Kind, or
// ErrInternal if err is not one of ours.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrInternal
}
