package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness for the gateway.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same code, so clones and wraps of a
// predefined error still match it with errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors. The first six form the session/protocol taxonomy.
var (
	ErrNotConnected   = New("NOT_CONNECTED", http.StatusServiceUnavailable, "not connected to server")
	ErrConnection     = New("CONNECTION_FAILED", http.StatusBadGateway, "could not connect to server")
	ErrConnectionLost = New("CONNECTION_LOST", http.StatusBadGateway, "server closed the connection")
	ErrCommunication  = New("COMMUNICATION_ERROR", http.StatusBadGateway, "error communicating with server")
	ErrServer         = New("SERVER_ERROR", http.StatusBadGateway, "server rejected the request")
	ErrParse          = New("PARSE_ERROR", http.StatusBadGateway, "unexpected server data")

	ErrUnauthenticated = New("UNAUTHENTICATED", http.StatusUnauthorized, "user not authenticated")
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden       = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidPayload  = New("INVALID_PAYLOAD", http.StatusBadRequest, "payload must be a JSON object")
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
	ErrCacheMiss       = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Server builds a SERVER_ERROR carrying the server supplied message. The
// server code becomes the HTTP status when it is a usable one.
func Server(code int, message string) *Error {
	status := http.StatusBadGateway
	if code >= 400 && code <= 599 {
		status = code
	}
	return &Error{Code: ErrServer.Code, Status: status, Message: message}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
