package logger

import (
	"github.com/kbukum/wirekit/validation"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	return validation.New().
		OneOf("log.level", c.Level, []string{"trace", "debug", "info", "warn", "error", "disabled"}).
		OneOf("log.format", c.Format, []string{FormatJSON, FormatConsole, FormatPretty}).
		OneOf("log.output", c.Output, []string{"stdout", "stderr", "none"}).
		Err()
}
