package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestWiringError_New_Retryable(t *testing.T) {
	err := New(ErrCodeLockUnavailable, "busy")
	if !err.Retryable {
		t.Error("LOCK_UNAVAILABLE should be retryable")
	}
	err = New(ErrCodeUnknownReference, "missing")
	if err.Retryable {
		t.Error("UNKNOWN_REFERENCE should not be retryable")
	}
}

func TestWiringError_Error_Format(t *testing.T) {
	err := UnknownEntry("db")
	if got := err.Error(); got != `UNKNOWN_ENTRY: no entry named "db"` {
		t.Errorf("unexpected message %q", got)
	}
	cause := fmt.Errorf("boom")
	err.WithCause(cause)
	if !strings.Contains(err.Error(), "(cause: boom)") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return cause")
	}
}

func TestCircularDependency_Message(t *testing.T) {
	tests := []struct {
		name       string
		unresolved []string
		chain      []string
		want       string
	}{
		{"with chain", []string{"a", "b"}, []string{"a", "b", "a"}, "circular dependency detected: a, b; cycle: a -> b -> a"},
		{"without chain", []string{"a", "b"}, nil, "circular dependency detected: a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CircularDependency(tt.unresolved, tt.chain)
			if err.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Message)
			}
			if !err.Structural() {
				t.Error("circular dependency should be structural")
			}
			if len(err.Names) != len(tt.unresolved) {
				t.Errorf("expected %d names, got %d", len(tt.unresolved), len(err.Names))
			}
		})
	}
}

func TestReentrant_Chain(t *testing.T) {
	err := Reentrant([]string{"a", "b"}, "a")
	want := []string{"a", "b", "a"}
	if strings.Join(err.Chain, ",") != strings.Join(want, ",") {
		t.Errorf("expected chain %v, got %v", want, err.Chain)
	}
	if !strings.Contains(err.Message, "a -> b -> a") {
		t.Errorf("expected chain in message, got %q", err.Message)
	}
}

func TestReentrant_ChainStartsAtCycle(t *testing.T) {
	err := Reentrant([]string{"x", "a", "b"}, "a")
	if got := strings.Join(err.Chain, " -> "); got != "a -> b -> a" {
		t.Errorf("expected chain a -> b -> a, got %s", got)
	}
	if !strings.Contains(err.Message, "detected: a -> b -> a") {
		t.Errorf("expected the trimmed chain in message, got %q", err.Message)
	}
}

func TestLockUnavailable_Details(t *testing.T) {
	err := LockUnavailable("svc", 3)
	if !err.Retryable {
		t.Error("expected retryable")
	}
	if err.Details["attempts"] != 3 {
		t.Errorf("expected attempts=3, got %v", err.Details["attempts"])
	}
	if err.Structural() {
		t.Error("lock errors are not structural")
	}
}

func TestInspect_WrappedError(t *testing.T) {
	base := UnknownReference("missing", "svc")
	wrapped := fmt.Errorf("resolving: %w", base)

	if !IsWiringError(wrapped) {
		t.Fatal("expected wrapped error to be detected")
	}
	if CodeOf(wrapped) != ErrCodeUnknownReference {
		t.Errorf("expected UNKNOWN_REFERENCE, got %s", CodeOf(wrapped))
	}
	if !Is(wrapped, ErrCodeUnknownReference) {
		t.Error("expected Is to match")
	}
	if Is(fmt.Errorf("plain"), ErrCodeUnknownReference) {
		t.Error("plain errors carry no code")
	}
	if IsRetryable(wrapped) {
		t.Error("unknown reference is not retryable")
	}
	if we, ok := AsWiringError(wrapped); !ok || we != base {
		t.Error("expected AsWiringError to return the original error")
	}
}

func TestDuplicateName_Keys(t *testing.T) {
	err := DuplicateName("db", "pkg.A db", "db")
	keys, ok := err.Details["keys"].([]string)
	if !ok || len(keys) != 2 {
		t.Fatalf("expected two keys in details, got %v", err.Details["keys"])
	}
	if err.Names[0] != "db" {
		t.Errorf("expected name db, got %v", err.Names)
	}
}
