package validation

import (
	"fmt"
	"go/token"
	"slices"
	"strings"
	"unicode"

	werrors "github.com/kbukum/wirekit/errors"
)

// FieldError is the failure of one configuration key.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates field errors across chained checks.
type Validator struct {
	failed []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure of field.
func (v *Validator) AddError(field, message string) {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.failed) > 0 }

// Errors returns the recorded failures in check order.
func (v *Validator) Errors() []FieldError { return v.failed }

// Err folds the failures into one INVALID_OPTION error. It returns nil when
// every check passed.
func (v *Validator) Err() error {
	if len(v.failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(v.failed))
	for _, e := range v.failed {
		parts = append(parts, e.String())
	}
	var field string
	if len(v.failed) == 1 {
		field = v.failed[0].Field
	}
	return werrors.InvalidOption(field, strings.Join(parts, "; ")).
		WithDetail("fields", v.failed)
}

// Required fails on blank values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Min fails when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// OneOf fails when a non-empty value is not listed in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value != "" && !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}

// Identifier fails when a non-empty value is not a Go identifier.
func (v *Validator) Identifier(field, value string) *Validator {
	if value != "" && !token.IsIdentifier(value) {
		v.AddError(field, "must be a Go identifier")
	}
	return v
}

// Delimiter fails when a placeholder marker contains whitespace.
func (v *Validator) Delimiter(field, value string) *Validator {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		v.AddError(field, "must not contain spaces")
	}
	return v
}
