package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// NotFound creates a new AppError for a registry item that was not found.
func NotFound(resource, name string) *AppError {
	details := map[string]any{"resource": resource}
	if name != "" {
		details["name"] = name
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// --- Resolution errors ---

// CircularDependency creates a new AppError for a dependency cycle.
func CircularDependency(root, path string) *AppError {
	return &AppError{
		Code: ErrCodeCircularDependency, Message: fmt.Sprintf("Resolving %s leads back to itself: %s", root, path),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"root": root, "chain": path},
	}
}

// DependencyNotFound creates a new AppError for a missing transitive dependency.
func DependencyNotFound(name, requestedBy string) *AppError {
	return &AppError{
		Code: ErrCodeDependencyNotFound, Message: fmt.Sprintf("Dependency %s required by %s is not registered.", name, requestedBy),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"name": name, "requested_by": requestedBy},
	}
}

// RegistryLocked creates a new AppError for a mutation attempted while locked.
func RegistryLocked(operation, name string) *AppError {
	details := map[string]any{"operation": operation}
	if name != "" {
		details["name"] = name
	}
	return &AppError{
		Code: ErrCodeRegistryLocked, Message: fmt.Sprintf("The registry is locked; %s was rejected.", operation),
		HTTPStatus: http.StatusConflict, Details: details,
	}
}

// ExtractionFailed creates a new AppError for a factory whose dependencies cannot be derived.
func ExtractionFailed(name, reason string) *AppError {
	return &AppError{
		Code: ErrCodeExtractionFailed, Message: fmt.Sprintf("Cannot determine dependencies of %s: %s", name, reason),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"name": name},
	}
}

// FactoryFailed creates a new AppError for a factory that did not produce a value.
func FactoryFailed(name string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFactoryFailed, Message: fmt.Sprintf("The factory for %s failed.", name),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"name": name}, Cause: cause,
	}
}
