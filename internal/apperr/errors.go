// Package apperr holds the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is returned when input fails validation
	ErrValidation = errors.New("validation error")

	// ErrConflict is returned when the request clashes with stored state
	ErrConflict = errors.New("conflict")

	// ErrCyclicDependency is returned when a dependency set would create a cycle
	ErrCyclicDependency = errors.New("cyclic dependency detected")

	// ErrDependencyUnmet is returned when mandatory prerequisites block a status change
	ErrDependencyUnmet = errors.New("mandatory prerequisites not met")
)

// ValidationError names the offending field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the entity name, e.g. "job status 4 not found".
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v not found: %w", entity, id, ErrNotFound)
}

// Conflict wraps ErrConflict with a message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// CycleError reports the offending path, e.g. a -> b -> a.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDependency || target == ErrConflict
}

// UnmetError lists the mandatory prerequisites a job has not visited yet.
type UnmetError struct {
	Status  string
	Missing []string
}

func (e *UnmetError) Error() string {
	return fmt.Sprintf("status %s requires %s first", e.Status, strings.Join(e.Missing, ", "))
}

func (e *UnmetError) Is(target error) bool {
	return target == ErrDependencyUnmet || target == ErrConflict
}

// Message returns the text shown to API callers: the outermost message for
// domain errors, without the sentinel suffix.
func Message(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrNotFound, ErrConflict} {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}
