package errorx

import (
	"errors"
	"fmt"
)

// Code is the numeric error code carried by the wheel service envelope.
type Code uint64

const (
	InvalidArgument  Code = 400
	Unauthenticated  Code = 401
	PermissionDenied Code = 403
	NotFound         Code = 404
	Conflict         Code = 409
	Internal         Code = 500
	Unavailable      Code = 503
)

// Err is the error branch of every service response.
type Err struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e Err) Error() string {
	return e.Message
}

func New(code Code, format string, args ...any) Err {
	return Err{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) Err {
	return New(NotFound, format, args...)
}

func NewInvalidArgument(format string, args ...any) Err {
	return New(InvalidArgument, format, args...)
}

func NewPermissionDenied(format string, args ...any) Err {
	return New(PermissionDenied, format, args...)
}

func NewUnauthenticated(format string, args ...any) Err {
	return New(Unauthenticated, format, args...)
}

func NewInternal(format string, args ...any) Err {
	return New(Internal, format, args...)
}

// From converts any error into an Err. Errors that already wrap an Err keep
// their code; everything else is reported as internal.
func From(err error) Err {
	var e Err
	if errors.As(err, &e) {
		return e
	}
	return Err{Code: Internal, Message: err.Error()}
}

// CodeOf returns the code of err, or Internal when err carries none.
func CodeOf(err error) Code {
	var e Err
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// Render formats err for a user-facing notification.
func Render(err error) string {
	if err == nil {
		return ""
	}
	var e Err
	if errors.As(err, &e) {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return err.Error()
}
