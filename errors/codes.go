package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lookup and input errors
const (
	// ErrCodeNotFound indicates the requested item was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates a name or configuration value is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Resolution errors
const (
	// ErrCodeCircularDependency indicates a dependency graph that refers back to an ancestor.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeDependencyNotFound indicates a transitive dependency is not registered.
	ErrCodeDependencyNotFound ErrorCode = "DEPENDENCY_NOT_FOUND"
	// ErrCodeRegistryLocked indicates a mutation was attempted on a locked registry.
	ErrCodeRegistryLocked ErrorCode = "REGISTRY_LOCKED"
	// ErrCodeExtractionFailed indicates dependency names could not be derived from a factory.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeFactoryFailed indicates a factory returned an error or could not be called.
	ErrCodeFactoryFailed ErrorCode = "FACTORY_FAILED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Resolution is deterministic: retrying against an unchanged registry cannot
// succeed, so no code is retryable. The table is kept so callers can still ask.
var retryableCodes = map[ErrorCode]bool{}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
