package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Structural errors (raised while constructing a container or compiler)
const (
	// ErrCodeInvalidKey indicates a malformed specification key.
	ErrCodeInvalidKey ErrorCode = "INVALID_KEY"
	// ErrCodeDuplicateName indicates two entries share a name.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"
	// ErrCodeCircularDependency indicates the reference graph has a cycle.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
)

// Resolution errors (raised on access)
const (
	// ErrCodeUnknownReference indicates a placeholder names no entry.
	ErrCodeUnknownReference ErrorCode = "UNKNOWN_REFERENCE"
	// ErrCodeUnknownEntry indicates an accessor was requested for an undefined name.
	ErrCodeUnknownEntry ErrorCode = "UNKNOWN_ENTRY"
	// ErrCodeReentrantResolution indicates a name was requested while it was being resolved.
	ErrCodeReentrantResolution ErrorCode = "REENTRANT_RESOLUTION"
	// ErrCodeLockUnavailable indicates the thread-safe lock could not be acquired.
	ErrCodeLockUnavailable ErrorCode = "LOCK_UNAVAILABLE"
)

// Configuration and generation errors
const (
	// ErrCodeInvalidOption indicates an option failed validation.
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"
	// ErrCodeUnsupportedValue indicates a value cannot be rendered as Go source.
	ErrCodeUnsupportedValue ErrorCode = "UNSUPPORTED_VALUE"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeLockUnavailable: true,
}

var structuralCodes = map[ErrorCode]bool{
	ErrCodeInvalidKey:         true,
	ErrCodeDuplicateName:      true,
	ErrCodeCircularDependency: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsStructuralCode returns true if the code is raised at construction time.
func IsStructuralCode(code ErrorCode) bool {
	return structuralCodes[code]
}
