package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	werrors "github.com/kbukum/wirekit/errors"
)

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// instance returns the shared validator. Fields are named by their
// mapstructure key so messages match configuration files.
func instance() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(keyName)
	})
	return structValidator
}

func keyName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return toSnakeCase(fld.Name)
	}
	return name
}

// Validate checks s against its validate tags.
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return werrors.InvalidOption("", err.Error())
	}
	v := New()
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), message(fe))
	}
	return v.Err()
}

// message renders a failed tag. Bounds on strings count characters.
func message(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param() + unit
	case "max", "lte":
		return "must be at most " + fe.Param() + unit
	case "oneof":
		return "must be one of: " + fe.Param()
	case "excludesall":
		return "must not contain any of: " + fe.Param()
	}
	return "is invalid"
}

// toSnakeCase turns LockRetrySleep into lock_retry_sleep.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
