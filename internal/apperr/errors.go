package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or invalid input detected before any I/O.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}

// Validation builds a ValidationError naming the offending fields.
func Validation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Validationf builds a ValidationError with a custom message.
func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Fields: []string{field}, Message: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage failure. Op names the failed operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err unless it is nil or already typed.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	var ve *ValidationError
	var perm *PermissionError
	var ce *ConflictError
	if errors.As(err, &pe) || errors.As(err, &ve) || errors.As(err, &perm) || errors.As(err, &ce) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// PermissionError reports a disallowed action.
type PermissionError struct {
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s is not allowed: %s", e.Action, e.Reason)
}

func Permission(action, reason string) *PermissionError {
	return &PermissionError{Action: action, Reason: reason}
}

// DeserializationError reports corrupt persisted state. It is logged and
// recovered from, never surfaced to users.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("corrupt state for %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// ConflictError reports a write that lost a race with another writer.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
