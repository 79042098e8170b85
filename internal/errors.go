package internal

import (
	"errors"
	"fmt"
)

// ErrNothingDue is returned by the due-today view when no unpaid expense is due.
var ErrNothingDue = errors.New("no expenses due today")

// ValidationError rejects an operation because of bad user input.
// The store and the data file are left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when a selection does not resolve to an expense.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

// CorruptDataError is returned when persisted data cannot be read back.
type CorruptDataError struct {
	Source string
	Err    error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Source, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsCorrupt reports whether err is, or wraps, a *CorruptDataError.
func IsCorrupt(err error) bool {
	var cd *CorruptDataError
	return errors.As(err, &cd)
}
