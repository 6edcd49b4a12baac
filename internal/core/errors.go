package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by ledger lookups when no record has the
// requested id. Callers may recover by treating the reference as unknown.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed input on a write: a missing required
// field, a negative amount, or an enum value outside the closed set.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrityError reports a write that references a foreign key
// with no matching record. The write must be rejected, never dropped.
type ReferentialIntegrityError struct {
	Kind string // kind of the missing record, e.g. "project"
	Ref  string // the dangling id
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("referential integrity: %s %q does not exist", e.Kind, e.Ref)
}

// HasDependentRecordsError reports a delete blocked by records that still
// reference the target. The ledger is left unchanged.
type HasDependentRecordsError struct {
	Kind       string // kind of the record being deleted
	ID         string
	Dependents int
}

func (e *HasDependentRecordsError) Error() string {
	return fmt.Sprintf("%s %q has %d dependent records", e.Kind, e.ID, e.Dependents)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
