// Package ftserr defines the single error type shared by the engine's
// build and query paths.
package ftserr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch without string matching.
type Kind int

const (
	// Io wraps any underlying read, write, or mmap failure.
	Io Kind = iota
	// Incompatible means a file's magic number or version did not match
	// what the reader expects.
	Incompatible
	// OutOfRange means a posting index was at or beyond a list's length,
	// or a posting block was truncated.
	OutOfRange
	// Fst means the term-index FST was malformed or corrupt.
	Fst
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Incompatible:
		return "incompatible"
	case OutOfRange:
		return "out_of_range"
	case Fst:
		return "fst"
	default:
		return "unknown"
	}
}

// Error is the one error type the engine returns. It never retries and
// never logs; the caller decides how to present or recover from it.
type Error struct {
	Kind Kind
	Op   string // what we were doing, e.g. "posting.Reader.DocID"
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(kind Kind, op string) error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an Error around an existing error. It returns a true
// nil error (not a nil *Error boxed in a non-nil interface) when err
// is nil, so callers can write `return ftserr.Wrap(..., someCall())`
// safely.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is lets errors.Is match on Kind via a sentinel constructed with New.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Is reports whether err unwraps to an *Error of the given Kind. Callers
// that only care about the failure category should use this instead of
// a plain nil check.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
