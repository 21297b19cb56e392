package domain

import (
	"errors"
	"fmt"
)

// Error codes surfaced in structured error payloads.
// CRUD callers map these to their own wire representation.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeCalculation = "CALCULATION_ERROR"
)

// ValidationError reports a missing or malformed field on an entity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", CodeValidation, e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an unknown goal, profile, category or parameter path.
type NotFoundError struct {
	Kind string // "goal", "profile", "category", "parameter"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q not found", CodeNotFound, e.Kind, e.Key)
}

// NewNotFoundError creates a NotFoundError for the given kind and key
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// PersistenceError wraps a storage failure with the operation that failed.
// The underlying error is preserved for errors.Is/As.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", CodePersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with the failing operation
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// CalculationError reports that a calculator could not produce a finite
// result. Callers substitute a documented default and log a warning;
// the error itself propagates only when no default exists.
type CalculationError struct {
	Calc   string
	Reason string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", CodeCalculation, e.Calc, e.Reason)
}

// NewCalculationError creates a CalculationError for the given calculator
func NewCalculationError(calc, reason string) error {
	return &CalculationError{Calc: calc, Reason: reason}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
