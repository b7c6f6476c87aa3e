package fixedfile

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrClosed is returned (wrapped in an IOError) when a Reader or Writer is
// used after it has been closed.
var ErrClosed = errors.New("fixedfile: file already closed")

// A SpecValidationError describes a specification document that could not be
// turned into a Layout.
type SpecValidationError struct {
	Keys []string // the missing or offending keys, if any
	Msg  string
}

func (e *SpecValidationError) Error() string {
	if len(e.Keys) == 0 {
		return "fixedfile: invalid specification: " + e.Msg
	}
	return "fixedfile: invalid specification: " + e.Msg + " (" + strings.Join(e.Keys, ", ") + ")"
}

func specError(msg string, keys ...string) *SpecValidationError {
	return &SpecValidationError{Keys: keys, Msg: msg}
}

// An IOError records a failed operation on a fixed-width or delimited file.
type IOError struct {
	Op   string // "open", "read", "write", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "fixedfile: " + e.Op + ": " + e.Err.Error()
	}
	return "fixedfile: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// Cause returns the underlying error. It allows errors.Cause from
// github.com/pkg/errors to see through an IOError.
func (e *IOError) Cause() error { return e.Err }

// ioError wraps err in an IOError, capturing a stack trace at the boundary.
// nil errors stay nil.
func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: errors.WithStack(err)}
}
