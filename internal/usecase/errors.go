package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error is returned by the chat pipeline for input it refuses to process.
// Reason is a short machine-readable tag such as "empty_message".
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// IsInvalidInput reports whether err is, or wraps, an INVALID_INPUT Error
// and returns its reason.
func IsInvalidInput(err error) (string, bool) {
	var ucErr *Error
	if !errors.As(err, &ucErr) || ucErr.Code != ErrorInvalidInput {
		return "", false
	}
	return ucErr.Reason, true
}
