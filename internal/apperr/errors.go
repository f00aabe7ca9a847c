// Package apperr defines the error taxonomy shared by the recruitment core and
// its transports. Every error carries the status the boundary should answer
// with and a message that is safe to show to the caller.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an Error with its class.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindTimeout
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is a user-facing failure with a transport status.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
	cause  error
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes the underlying cause, if any, for logging.
func (e *Error) Unwrap() error { return e.cause }

// WithCause returns a copy of e that wraps cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// Validation reports malformed client input (422).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Msg: msg}
}

// BadRequest is a validation failure reported with 400, used when an upstream
// rejected the payload.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Msg: msg}
}

// Conflict reports a duplicate resource (409).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Msg: msg}
}

// Timeout reports an upstream that kept timing out (504).
func Timeout(msg string) *Error {
	return &Error{Kind: KindTimeout, Status: http.StatusGatewayTimeout, Msg: msg}
}

// Server reports an internal or upstream fault (500).
func Server(msg string) *Error {
	return &Error{Kind: KindServer, Status: http.StatusInternalServerError, Msg: msg}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
