// Package domainerrors defines coded errors shared by services and transports.
//
// Services return *Error values (or wrap infrastructure errors with Wrap) and
// transports translate the Code into a status without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error independently of any transport.
type Code string

const (
	CodeValidation       Code = "validation_error"
	CodeBadRequest       Code = "bad_request"
	CodeMethodNotAllowed Code = "method_not_allowed"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeRateLimited      Code = "rate_limited"
	CodeUnavailable      Code = "unavailable"
	CodeTimeout          Code = "timeout"
	CodeConfig           Code = "config_error"
	CodeInternal         Code = "internal_error"
)

// Error is a coded error. Message is safe to show to callers unless the code
// is CodeInternal.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err is a domain error, returning it when it is.
func Is(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	de, ok := Is(err)
	return ok && de.Code == code
}
