// Package apperr defines the error kinds surfaced at the HTTP boundary and
// their status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the client.
type Kind int

const (
	KindPersistence Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindUpstream
)

// Generic client-facing messages for the kinds whose cause is never shown.
const (
	MsgPersistence = "Something went wrong. Please try again."
	MsgUpstream    = "The AI assistant is currently unavailable. Please try again later."
)

// Error carries a client-safe message; Err holds the cause for logging only.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps a request field to its first validation failure.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationFields builds a validation error whose message is the first
// entry of order that has a failure.
func ValidationFields(fields map[string]string, order []string) *Error {
	msg := "Invalid input"
	for _, name := range order {
		if m, ok := fields[name]; ok {
			msg = m
			break
		}
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: "Method not allowed"}
}

func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: MsgUpstream, Err: err}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: MsgPersistence, Err: err}
}

// As extracts an *Error from err. Anything that is not one is treated as a
// persistence failure.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Persistence(err)
}

// StatusOf maps err to its HTTP status code.
func StatusOf(err error) int {
	switch As(err).Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
