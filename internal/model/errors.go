package model

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input. It is never worth retrying.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a failure of the underlying persistence layer.
// Op names the store operation that failed (e.g. "upsert entry").
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err for op. Nil stays nil and validation errors
// pass through untouched so callers can still tell the two kinds apart.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidationError(err) || IsStorageError(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError checks if err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
