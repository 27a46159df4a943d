// # internal/errs/errs.go
package errs

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidRoot     Code = "INVALID_ROOT"
	CodeUnreadableDir   Code = "UNREADABLE_DIR"
	CodeParseFailure    Code = "PARSE_FAILURE"
	CodePathOutsideRoot Code = "PATH_OUTSIDE_ROOT"
	CodeInternal        Code = "INTERNAL_ERROR"
)

type ScanError struct {
	Code    Code
	Message string
	Err     error
	Path    string
}

func (e *ScanError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

func New(code Code, msg string) error {
	return &ScanError{Code: code, Message: msg}
}

func Wrap(err error, code Code, msg string) error {
	return &ScanError{Code: code, Message: msg, Err: err}
}

func WithPath(err error, path string) error {
	var se *ScanError
	if errors.As(err, &se) {
		se.Path = path
		return se
	}
	return &ScanError{Code: CodeInternal, Message: "wrapped error", Err: err, Path: path}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// Fatal distinguishes scan-aborting conditions from per-file skips.
func Fatal(err error) bool {
	return IsCode(err, CodeInvalidRoot) || IsCode(err, CodePathOutsideRoot)
}
