package resolve

import (
	"runtime"
	"time"

	"github.com/kbukum/wirekit/validation"
)

// Defaults of the locking protocol.
const (
	DefaultMaxLockAttempts = 10
	DefaultLockRetrySleep  = 10 * time.Millisecond
)

// Config configures a Table.
type Config struct {
	// ThreadSafe serializes first resolutions with the two-level lock protocol.
	ThreadSafe bool `mapstructure:"thread_safe"`
	// MaxLockAttempts bounds the attempts on the container-wide lock.
	MaxLockAttempts int `mapstructure:"max_lock_attempts" validate:"min=1"`
	// LockRetrySleep is the pause between attempts.
	LockRetrySleep time.Duration `mapstructure:"lock_retry_sleep" validate:"gte=0"`
	// Workers bounds concurrent asynchronous resolutions.
	Workers int `mapstructure:"workers" validate:"min=1"`
	// Observer receives resolution events.
	Observer Observer `mapstructure:"-" validate:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxLockAttempts: DefaultMaxLockAttempts,
		LockRetrySleep:  DefaultLockRetrySleep,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.Validate(c)
}

// Option configures a Table.
type Option func(*Config)

// WithThreadSafe enables or disables the lock protocol.
func WithThreadSafe(enabled bool) Option {
	return func(c *Config) { c.ThreadSafe = enabled }
}

// WithMaxLockAttempts sets the number of attempts on the container-wide lock.
func WithMaxLockAttempts(n int) Option {
	return func(c *Config) { c.MaxLockAttempts = n }
}

// WithLockRetrySleep sets the pause between lock attempts.
func WithLockRetrySleep(d time.Duration) Option {
	return func(c *Config) { c.LockRetrySleep = d }
}

// WithWorkers sets the size of the asynchronous worker pool.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithObserver sets the observer of resolution events.
func WithObserver(o Observer) Option {
	return func(c *Config) { c.Observer = o }
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
