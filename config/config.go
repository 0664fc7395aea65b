package config

import (
	"time"

	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/validation"
	"github.com/kbukum/wirekit/version"
)

// Defaults.
const (
	DefaultMaxLockAttempts = 10
	DefaultLockRetrySleep  = 10 * time.Millisecond
	DefaultPackage         = "wired"
	DefaultServiceName     = "wirekit"
)

// Config is the complete wirekit configuration.
type Config struct {
	Log       logger.Config        `yaml:"log" mapstructure:"log"`
	Container Container            `yaml:"container" mapstructure:"container"`
	Compile   Compile              `yaml:"compile" mapstructure:"compile"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// Container configures runtime containers.
type Container struct {
	ThreadSafe      bool          `yaml:"thread_safe" mapstructure:"thread_safe"`
	MaxLockAttempts int           `yaml:"max_lock_attempts" mapstructure:"max_lock_attempts" validate:"min=1"`
	LockRetrySleep  time.Duration `yaml:"lock_retry_sleep" mapstructure:"lock_retry_sleep" validate:"gte=0"`
	// Workers sizes the async pool. Zero uses GOMAXPROCS.
	Workers    int        `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	Delimiters Delimiters `yaml:"delimiters" mapstructure:"delimiters"`
}

// Delimiters are the placeholder markers.
type Delimiters struct {
	Open  string `yaml:"open" mapstructure:"open" validate:"required"`
	Close string `yaml:"close" mapstructure:"close" validate:"required"`
}

// Compile configures generated code.
type Compile struct {
	Package    string `yaml:"package" mapstructure:"package" validate:"required"`
	Async      bool   `yaml:"async" mapstructure:"async"`
	ThreadSafe bool   `yaml:"thread_safe" mapstructure:"thread_safe"`
	Output     string `yaml:"output" mapstructure:"output"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Log.ApplyDefaults()
	c.Container.ApplyDefaults()
	if c.Compile.Package == "" {
		c.Compile.Package = DefaultPackage
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = version.Version
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

// ApplyDefaults fills unset container fields.
func (c *Container) ApplyDefaults() {
	if c.MaxLockAttempts == 0 {
		c.MaxLockAttempts = DefaultMaxLockAttempts
	}
	if c.LockRetrySleep == 0 {
		c.LockRetrySleep = DefaultLockRetrySleep
	}
	if c.Delimiters.Open == "" {
		c.Delimiters.Open = "{"
	}
	if c.Delimiters.Close == "" {
		c.Delimiters.Close = "}"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Delimiter("container.delimiters.open", c.Container.Delimiters.Open).
		Delimiter("container.delimiters.close", c.Container.Delimiters.Close).
		Identifier("compile.package", c.Compile.Package).
		Err()
}
