// Package model provides core data types for aktdoclix.
package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error types for archive operations
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidID       = errors.New("id must be a number")
	ErrDuplicateID     = errors.New("id already taken")
	ErrRequired        = errors.New("signature and title are required")
	ErrInvalidCount    = errors.New("count must be at least 1")
	ErrInvalidSlot     = errors.New("invalid quick-entry slot")
	ErrUnknownKind     = errors.New("unknown vocabulary")
	ErrEntryNotFound   = errors.New("vocabulary entry not found")
	ErrPathMissing     = errors.New("path does not exist or is empty")
	ErrCategoryUnknown = errors.New("category not found")
)

// StorageError wraps a failed statement against the record store.
// Callers must treat the operation as not having happened.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError reports user input that was rejected before anything was written.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a failed folder operation that aborts the caller.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// IsStorage reports whether err stems from the record store.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsValidation reports whether err is a ValidationError or an ozzo validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var errs validation.Errors
	return errors.As(err, &errs)
}

// IsFilesystem reports whether err is a FilesystemError.
func IsFilesystem(err error) bool {
	var fe *FilesystemError
	return errors.As(err, &fe)
}
