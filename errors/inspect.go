package errors

import (
	stderrors "errors"
)

// IsWiringError checks if an error is a WiringError.
func IsWiringError(err error) bool {
	var we *WiringError
	return stderrors.As(err, &we)
}

// AsWiringError converts an error to a WiringError if possible.
func AsWiringError(err error) (*WiringError, bool) {
	var we *WiringError
	if stderrors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// CodeOf returns the code of the first WiringError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if we, ok := AsWiringError(err); ok {
		return we.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsRetryable reports whether err is a retryable WiringError.
func IsRetryable(err error) bool {
	if we, ok := AsWiringError(err); ok {
		return we.Retryable
	}
	return false
}
