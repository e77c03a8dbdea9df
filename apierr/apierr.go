// Package apierr carries the HTTP status and stable error code an internal
// failure should surface as at the handler boundary.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidInput    = "invalid_input"
	CodeConfigError     = "config_error"
	CodeUpstreamFailure = "upstream_failure"
	CodeSchemaViolation = "schema_violation"
	CodeNotFound        = "not_found"
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

func InvalidInput(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, err)
}

func ConfigError(err error) *Error {
	return New(http.StatusInternalServerError, CodeConfigError, err)
}

func UpstreamFailure(status int, err error) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return New(status, CodeUpstreamFailure, err)
}

func SchemaViolation(err error) *Error {
	return New(http.StatusInternalServerError, CodeSchemaViolation, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// From extracts an *Error from err, or wraps it as a generic 500.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, CodeUpstreamFailure, err)
}
