// Package errors provides a string based error type for declaring constant
// errors, plus the handful of standard library helpers the rest of the module uses.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeparator separates an error message from its cause.
const ErrSeparator = " -- "

const (
	// ErrNoTypeInformation is returned when a rule that requires type information
	// is activated without a type service.
	ErrNoTypeInformation = Error("rule requires type information but no type service is available")
	// ErrUnsupportedSource is returned for files the front end cannot parse.
	ErrUnsupportedSource = Error("unsupported source file")
	// ErrParse is returned when a source file or ESTree document fails to parse.
	ErrParse = Error("failed to parse source")
	// ErrInvalidConfig is returned when a lint configuration fails validation.
	ErrInvalidConfig = Error("invalid lint configuration")
	// ErrInvalidTypeFacts is returned when a type facts document fails validation.
	ErrInvalidTypeFacts = Error("invalid type facts")
	// ErrInvalidSelector is returned for visitor selectors outside the supported grammar.
	ErrInvalidSelector = Error("invalid selector")
)

// Error allows errors to be declared as constants.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this error or was produced by wrapping it.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return s.Error() == target.Error() || strings.HasPrefix(target.Error(), s.Error()+ErrSeparator)
}

// Wrap returns an error with this message and err as its cause.
func (s Error) Wrap(err error) error {
	return wrappedError{cause: err, msg: string(s)}
}

// Wrapf wraps a formatted cause.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{cause: fmt.Errorf(format, args...), msg: string(s)}
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", w.msg, ErrSeparator, w.cause)
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// UnwrapErrors flattens a joined error into its parts.
func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(interface{ Unwrap() []error }); ok {
		return je.Unwrap()
	}
	return []error{err}
}
