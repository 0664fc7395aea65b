package validation

import (
	"strings"
	"testing"

	werrors "github.com/kbukum/wirekit/errors"
)

type lockOptions struct {
	MaxLockAttempts int    `mapstructure:"max_lock_attempts" validate:"min=1"`
	Format          string `mapstructure:"format" validate:"omitempty,oneof=yaml json toml"`
	RetrySleepMs    int    `validate:"gte=0"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(lockOptions{MaxLockAttempts: 3, Format: "yaml"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_FieldNames(t *testing.T) {
	err := Validate(lockOptions{MaxLockAttempts: 0, Format: "xml", RetrySleepMs: -1})
	we, ok := werrors.AsWiringError(err)
	if !ok || we.Code != werrors.ErrCodeInvalidOption {
		t.Fatalf("expected INVALID_OPTION, got %v", err)
	}
	for _, want := range []string{
		"max_lock_attempts: must be at least 1",
		"format: must be one of: yaml json toml",
		"retry_sleep_ms: must be at least 0",
	} {
		if !strings.Contains(we.Message, want) {
			t.Errorf("expected %q in %q", want, we.Message)
		}
	}
	fields, ok := we.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", we.Details["fields"])
	}
}

func TestValidator_Collects(t *testing.T) {
	v := New()
	v.Required("package", "").
		Min("workers", 0, 1).
		OneOf("level", "loud", []string{"debug", "info"})
	v.AddError("delimiters", "must differ")
	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %d", len(v.Errors()))
	}
	if !werrors.Is(v.Err(), werrors.ErrCodeInvalidOption) {
		t.Errorf("expected INVALID_OPTION, got %v", v.Err())
	}
}

func TestValidator_SingleFieldDetail(t *testing.T) {
	v := New().Required("package", " ")
	we, _ := werrors.AsWiringError(v.Err())
	if we.Details["field"] != "package" {
		t.Errorf("expected field=package, got %v", we.Details["field"])
	}
}

func TestValidator_IdentifierAndDelimiter(t *testing.T) {
	v := New().
		Identifier("compile.package", "wired").
		Identifier("compile.package", "2x").
		Delimiter("open", "<<").
		Delimiter("close", "> >")
	errs := v.Errors()
	if len(errs) != 2 || errs[0].Field != "compile.package" || errs[1].Field != "close" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestValidator_NoErrors(t *testing.T) {
	v := New().Required("package", "wired").OneOf("level", "", []string{"debug"})
	if v.Err() != nil {
		t.Errorf("expected nil, got %v", v.Err())
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("LockRetrySleep"); got != "lock_retry_sleep" {
		t.Errorf("expected lock_retry_sleep, got %q", got)
	}
}
