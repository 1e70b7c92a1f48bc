// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrEmptyImport   = errors.New("no trades found in import")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDatabase      = errors.New("database error")
	ErrDataNotFound  = errors.New("data not found")
)

// ImportError represents a failure while importing a trade file.
type ImportError struct {
	Path    string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import error [%s]: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("import error [%s]: %s", e.Path, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(path, message string, err error) *ImportError {
	return &ImportError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error on a trade field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
