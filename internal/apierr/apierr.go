package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in the response envelope.
const (
	CodeValidation    = "validation_error"
	CodeAuth          = "auth_error"
	CodeNotFound      = "not_found"
	CodeUpstream      = "upstream_error"
	CodeAIUnavailable = "ai_unavailable"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func Auth(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, CodeAuth, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Upstream(err error) *Error {
	return New(http.StatusInternalServerError, CodeUpstream, err)
}

// AIUnavailable marks a model-gateway failure so the handler layer can
// surface it distinctly from a generic 500.
func AIUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeAIUnavailable, err)
}

// From normalizes any error into an *Error; unknown errors become
// upstream errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Upstream(err)
}
