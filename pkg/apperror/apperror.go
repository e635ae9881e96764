// Package apperror classifies failures into the kinds the HTTP layer reports.
package apperror

import (
	"errors"
	"net/http"
)

// Kind is the category of an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindConflict
	KindNotFound
	KindTimeout
)

const (
	LabelError  = "Error"
	LabelExists = "Exists"
)

// Error is an error with a kind, a client-safe message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Label   string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error
func (e *Error) HTTPStatus() int {
	if e.Code != 0 {
		return e.Code
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// StatusLabel returns the value of the "Status" field in error bodies
func (e *Error) StatusLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return LabelError
}

// WithCode overrides the HTTP status
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

// WithLabel overrides the "Status" body field
func (e *Error) WithLabel(label string) *Error {
	e.Label = label
	return e
}

// Wrap attaches a cause
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return newError(KindValidation, message) }
func Unauthorized(message string) *Error { return newError(KindUnauthorized, message) }
func Conflict(message string) *Error     { return newError(KindConflict, message) }
func NotFound(message string) *Error     { return newError(KindNotFound, message) }
func Timeout(message string) *Error      { return newError(KindTimeout, message) }
func Internal(message string) *Error     { return newError(KindInternal, message) }

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
