package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Failure kinds. Domain and use case errors are marked with exactly one of
// these so transport layers can map them without string matching.
var (
	ErrValidation           = cr.New("validation error")
	ErrInvalidTransition    = cr.New("invalid transition")
	ErrInvalidTemporalInput = cr.New("invalid temporal input")
	ErrNotFound             = cr.New("not found")
	ErrForbidden            = cr.New("forbidden")
	ErrConflict             = cr.New("conflict")
	ErrTransient            = cr.New("transient failure")
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// Kind returns the first failure kind err is marked with, or nil.
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation,
		ErrInvalidTransition,
		ErrInvalidTemporalInput,
		ErrNotFound,
		ErrForbidden,
		ErrConflict,
		ErrTransient,
	} {
		if cr.Is(err, k) {
			return k
		}
	}
	return nil
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
