package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced to a client wraps exactly one of them.
var (
	ErrUnauthenticated = errors.New("Unauthenticated")
	ErrForbidden       = errors.New("Forbidden")
	ErrNotFound        = errors.New("NotFound")
	ErrConflict        = errors.New("Conflict")
	ErrBadRequest      = errors.New("BadRequest")
)

// Error carries a machine-checkable kind plus a human-readable message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Unauthenticatedf(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func BadRequestf(format string, args ...any) error {
	return newError(ErrBadRequest, format, args...)
}

// KindOf returns the kind wrapped by err, or nil for unexpected errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrBadRequest} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
