package di

import (
	"fmt"
	"strings"

	apperrors "github.com/kbukum/dingu/errors"
)

// CircularDependencyError is returned when an entry depends, directly or
// transitively, on itself.
type CircularDependencyError struct {
	Root  string
	Chain []string
}

// Path returns the cycle as "A->B->A".
func (e *CircularDependencyError) Path() string {
	parts := make([]string, 0, len(e.Chain)+1)
	parts = append(parts, e.Chain...)
	parts = append(parts, e.Root)
	return strings.Join(parts, "->")
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("Calling %s resolved a dependency that depends on this item. Chain: %s", e.Root, e.Path())
}

func (e *CircularDependencyError) AppError() *apperrors.AppError {
	return apperrors.CircularDependency(e.Root, e.Path()).WithCause(e)
}

// ItemNotFoundError is returned when a top-level lookup names an absent entry.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s - was it registered?", e.Name)
}

func (e *ItemNotFoundError) AppError() *apperrors.AppError {
	return apperrors.NotFound("item", e.Name).WithCause(e)
}

// DependencyNotFoundError is returned when a transitive dependency is absent.
type DependencyNotFoundError struct {
	Name        string
	RequestedBy string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("failed to resolve dependency of %s: could not find an item called %s", e.RequestedBy, e.Name)
}

func (e *DependencyNotFoundError) AppError() *apperrors.AppError {
	return apperrors.DependencyNotFound(e.Name, e.RequestedBy).WithCause(e)
}

// LockedError is returned by mutating operations on a locked registry when
// strict locking is enabled.
type LockedError struct {
	Operation string
	Name      string
}

func (e *LockedError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("registry is locked: %s rejected", e.Operation)
	}
	return fmt.Sprintf("registry is locked: %s %q rejected", e.Operation, e.Name)
}

func (e *LockedError) AppError() *apperrors.AppError {
	return apperrors.RegistryLocked(e.Operation, e.Name).WithCause(e)
}

// ExtractionError is returned when the dependency names of a factory cannot
// be determined, or the factory's shape does not match them.
type ExtractionError struct {
	Name   string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Name == "" {
		return "cannot extract dependencies: " + e.Reason
	}
	return fmt.Sprintf("cannot extract dependencies of %s: %s", e.Name, e.Reason)
}

func (e *ExtractionError) AppError() *apperrors.AppError {
	return apperrors.ExtractionFailed(e.Name, e.Reason).WithCause(e)
}

// FactoryError wraps a failure reported by a factory, or an argument that
// could not be passed to it.
type FactoryError struct {
	Name  string
	Cause error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("factory for %s failed: %v", e.Name, e.Cause)
}

func (e *FactoryError) Unwrap() error { return e.Cause }

func (e *FactoryError) AppError() *apperrors.AppError {
	return apperrors.FactoryFailed(e.Name, e.Cause)
}
