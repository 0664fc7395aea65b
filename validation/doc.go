// Package validation checks option and configuration structs.
//
// Struct tag validation uses the go-playground validator:
//
//	type Config struct {
//	    MaxLockAttempts int `validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects field errors:
//
//	v := validation.New()
//	v.OneOf("format", cfg.Format, []string{"yaml", "json", "toml"})
//	err := v.Err()
//
// Both report a *errors.WiringError with code INVALID_OPTION.
package validation
