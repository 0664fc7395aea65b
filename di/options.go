package di

import (
	"time"

	"github.com/kbukum/wirekit/config"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/resolve"
	"github.com/kbukum/wirekit/spec"
)

type options struct {
	table    []resolve.Option
	parser   []spec.Option
	log      *logger.Logger
	observer resolve.Observer
}

// Option configures a Container.
type Option func(*options)

// WithThreadSafe enables the locking protocol for first resolutions.
func WithThreadSafe(enabled bool) Option {
	return func(o *options) { o.table = append(o.table, resolve.WithThreadSafe(enabled)) }
}

// WithMaxLockAttempts bounds the attempts on the container-wide lock.
func WithMaxLockAttempts(n int) Option {
	return func(o *options) { o.table = append(o.table, resolve.WithMaxLockAttempts(n)) }
}

// WithLockRetrySleep sets the pause between lock attempts.
func WithLockRetrySleep(d time.Duration) Option {
	return func(o *options) { o.table = append(o.table, resolve.WithLockRetrySleep(d)) }
}

// WithWorkers sets the size of the async worker pool.
func WithWorkers(n int) Option {
	return func(o *options) { o.table = append(o.table, resolve.WithWorkers(n)) }
}

// WithDelimiters sets the placeholder markers.
func WithDelimiters(open, close string) Option {
	return func(o *options) { o.parser = append(o.parser, spec.WithDelimiters(open, close)) }
}

// WithLogger sets the container logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver sets the observer of resolution events.
func WithObserver(obs resolve.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithConfig applies loaded container settings.
func WithConfig(cfg config.Container) Option {
	return func(o *options) {
		o.table = append(o.table,
			resolve.WithThreadSafe(cfg.ThreadSafe),
			resolve.WithMaxLockAttempts(cfg.MaxLockAttempts),
			resolve.WithLockRetrySleep(cfg.LockRetrySleep),
		)
		if cfg.Workers > 0 {
			o.table = append(o.table, resolve.WithWorkers(cfg.Workers))
		}
		if cfg.Delimiters.Open != "" || cfg.Delimiters.Close != "" {
			o.parser = append(o.parser, spec.WithDelimiters(cfg.Delimiters.Open, cfg.Delimiters.Close))
		}
	}
}
