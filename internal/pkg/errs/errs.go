package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
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

// Mark tags err so that Is(err, markErr) holds while keeping err's message.
// Unlike cr.Mark, err keeps its own identity: two sentinels marked with the
// same category stay distinguishable from each other.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: err, category: markErr}
}

type markedError struct {
	cause    error
	category error
}

func (m *markedError) Error() string { return m.cause.Error() }
func (m *markedError) Unwrap() error { return m.cause }

// Is matches the category and, transitively, whatever the category is marked with.
func (m *markedError) Is(target error) bool {
	return cr.Is(m.category, target)
}

func (m *markedError) Format(s fmt.State, verb rune) { cr.FormatError(m, s, verb) }

func (m *markedError) FormatError(cr.Printer) error { return m.cause }

// Is understands marks added by Mark in addition to regular wrapping.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
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
