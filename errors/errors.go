package errors

import (
	"fmt"
	"slices"
	"strings"
)

// WiringError is the unified error type of the wiring engine.
type WiringError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Names lists the entries the error is about.
	Names []string `json:"names,omitempty"`
	// Chain is the resolution or dependency path that closes a cycle.
	Chain []string `json:"chain,omitempty"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *WiringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *WiringError) Unwrap() error { return e.Cause }

// Structural reports whether the error was raised at construction time.
func (e *WiringError) Structural() bool { return IsStructuralCode(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *WiringError) WithCause(cause error) *WiringError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *WiringError) WithDetail(key string, value any) *WiringError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new WiringError with automatic retryable detection.
func New(code ErrorCode, message string) *WiringError {
	return &WiringError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// InvalidKey creates an error for a specification key that breaks the key grammar.
func InvalidKey(key, reason string) *WiringError {
	return &WiringError{
		Code: ErrCodeInvalidKey, Message: fmt.Sprintf("invalid spec key %q: %s", key, reason),
		Details: map[string]any{"key": key},
	}
}

// DuplicateName creates an error for a name defined by more than one key.
func DuplicateName(name string, keys ...string) *WiringError {
	e := &WiringError{
		Code: ErrCodeDuplicateName, Message: fmt.Sprintf("duplicate entry name %q", name),
		Names: []string{name},
	}
	if len(keys) > 0 {
		e.Details = map[string]any{"keys": keys}
	}
	return e
}

// CircularDependency creates an error naming every entry left unprocessed by
// the topological sort and, when one was found, a chain that closes a cycle.
func CircularDependency(unresolved, chain []string) *WiringError {
	msg := "circular dependency detected: " + strings.Join(unresolved, ", ")
	if len(chain) > 0 {
		msg += "; cycle: " + strings.Join(chain, " -> ")
	}
	return &WiringError{
		Code: ErrCodeCircularDependency, Message: msg,
		Names: unresolved, Chain: chain,
	}
}

// UnknownReference creates an error for a placeholder that names no entry.
func UnknownReference(name, referrer string) *WiringError {
	return &WiringError{
		Code: ErrCodeUnknownReference, Message: fmt.Sprintf("unknown placeholder %q referenced by %q", name, referrer),
		Names: []string{name}, Details: map[string]any{"referrer": referrer},
	}
}

// UnknownEntry creates an error for an accessor requested for an undefined name.
func UnknownEntry(name string) *WiringError {
	return &WiringError{
		Code: ErrCodeUnknownEntry, Message: fmt.Sprintf("no entry named %q", name),
		Names: []string{name},
	}
}

// Reentrant creates an error for a name requested while it is being resolved.
// stack is the resolution stack at the time of the request. The chain starts
// at the first occurrence of name in stack and is closed by name.
func Reentrant(stack []string, name string) *WiringError {
	if i := slices.Index(stack, name); i > 0 {
		stack = stack[i:]
	}
	chain := make([]string, 0, len(stack)+1)
	chain = append(chain, stack...)
	chain = append(chain, name)
	return &WiringError{
		Code: ErrCodeReentrantResolution, Message: "circular wiring dependency detected: " + strings.Join(chain, " -> "),
		Names: []string{name}, Chain: chain,
	}
}

// LockUnavailable creates an error for a lock that could not be acquired.
func LockUnavailable(name string, attempts int) *WiringError {
	return &WiringError{
		Code: ErrCodeLockUnavailable, Message: fmt.Sprintf("failed to acquire lock for %q after %d attempts", name, attempts),
		Names: []string{name}, Retryable: true,
		Details: map[string]any{"attempts": attempts},
	}
}

// InvalidOption creates an error for an option that failed validation.
func InvalidOption(field, reason string) *WiringError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &WiringError{
		Code: ErrCodeInvalidOption, Message: fmt.Sprintf("invalid option: %s", reason),
		Details: details,
	}
}

// UnsupportedValue creates an error for a value the compiler cannot write as Go source.
func UnsupportedValue(name string, value any) *WiringError {
	return &WiringError{
		Code: ErrCodeUnsupportedValue, Message: fmt.Sprintf("cannot render value of type %T in entry %q", value, name),
		Names: []string{name},
	}
}
