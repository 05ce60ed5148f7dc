package reader

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFileNotFound matches any *FileNotFoundError.
	ErrFileNotFound = errors.New("file not found")
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("parse error")

	ErrRaggedRows     = errors.New("inconsistent number of columns")
	ErrUnknownFlag    = errors.New("unknown parser flag")
	ErrInvalidFlag    = errors.New("invalid parser flag value")
	ErrNameCount      = errors.New("number of names does not match number of columns")
	ErrTooFewColumns  = errors.New("file must have at least two columns for x and y data")
	ErrColumnNotFound = errors.New("column not found")
)

const unknownCaller = "unknown caller"

// FileNotFoundError reports a missing input file. Context names the caller
// that attempted the read; callers fill it through Config.Context or
// WithContext before propagating.
type FileNotFoundError struct {
	Context string
	Path    string
	Err     error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found: %s", contextOrDefault(e.Context), e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// ParseError reports malformed input. Line is 1-based and zero when the
// failure is not tied to a line (bad flags, I/O errors).
type ParseError struct {
	Context string
	Path    string
	Line    int
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<stream>"
	}

	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}

	return fmt.Sprintf("%s: cannot parse %s: %v", contextOrDefault(e.Context), where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// WithContext returns err with the caller context set on the reader error it
// wraps. Errors not produced by this package are returned unchanged.
func WithContext(err error, context string) error {
	var fnf *FileNotFoundError
	if errors.As(err, &fnf) {
		out := *fnf
		out.Context = context

		return &out
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		out := *pe
		out.Context = context

		return &out
	}

	return err
}

func contextOrDefault(context string) string {
	if context == "" {
		return unknownCaller
	}

	return context
}
