// Package apperr holds the sentinel errors shared by repositories, services
// and handlers, and their mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrSelfComment   = errors.New("cannot comment on own review")
)

// Error pairs a sentinel with a message safe to send to clients. Error()
// keeps the full detail for logs.
type Error struct {
	kind   error
	msg    string
	public string
}

// New builds an Error of the given kind. An empty detail leaves the log
// message equal to the public one.
func New(kind error, public, detail string) *Error {
	msg := public
	if detail != "" {
		msg = public + " (" + detail + ")"
	}
	return &Error{kind: kind, msg: msg, public: public}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Public returns the client-facing message.
func (e *Error) Public() string { return e.public }

// NotFound wraps ErrNotFound with the resource and key that were looked up.
// Clients only see the resource.
func NotFound(resource, key string) error {
	return &Error{
		kind:   ErrNotFound,
		msg:    fmt.Sprintf("%s %s not found", resource, key),
		public: resource + " not found",
	}
}

// AlreadyExists wraps ErrAlreadyExists with a description of the clash.
// Clients only see the resource.
func AlreadyExists(resource, detail string) error {
	return &Error{
		kind:   ErrAlreadyExists,
		msg:    fmt.Sprintf("%s %s already exists", resource, detail),
		public: resource + " already exists",
	}
}

// Invalid wraps ErrInvalidInput with a message for the client.
func Invalid(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{kind: ErrInvalidInput, msg: "invalid input: " + msg, public: msg}
}

// Forbidden wraps ErrForbidden with the denied action.
func Forbidden(action string) error {
	msg := "forbidden: " + action
	return &Error{kind: ErrForbidden, msg: msg, public: msg}
}

// ValidationError carries per-field messages for a rejected request body.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Fields  map[string]string
	Summary string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSelfComment):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text a client may see for err, dropping the
// wrap chain built up on the way out of the repositories.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Public()
	}
	for _, sentinel := range []error{
		ErrSelfComment, ErrNotFound, ErrAlreadyExists,
		ErrInvalidInput, ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(HTTPStatus(err))
}

// IsClientError reports whether err maps to a 4xx status.
func IsClientError(err error) bool {
	status := HTTPStatus(err)
	return status >= 400 && status < 500
}
