package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	werrors "github.com/kbukum/wirekit/errors"
)

// Builder produces the value of one entry.
type Builder func(ctx context.Context) (any, error)

// Table holds the cache slots and locks of one container.
type Table struct {
	cfg Config
	obs Observer

	mu     sync.RWMutex
	values map[string]any
	order  []string
	locks  map[string]*sync.Mutex
	global sync.Mutex
	// resolving lists the names whose builders are running, in start order.
	resolving []string

	pool *Pool
}

// NewTable creates a Table for the given entry names.
func NewTable(names []string, opts ...Option) (*Table, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		cfg:    cfg,
		obs:    cfg.Observer,
		values: make(map[string]any, len(names)),
		locks:  make(map[string]*sync.Mutex, len(names)),
		pool:   NewPool(cfg.Workers),
	}
	if t.obs == nil {
		t.obs = nopObserver{}
	}
	for _, name := range names {
		t.locks[name] = &sync.Mutex{}
	}
	return t, nil
}

// Config returns the configuration of the table.
func (t *Table) Config() Config { return t.cfg }

// Seed stores a value computed at construction.
func (t *Table) Seed(name string, value any) {
	t.mu.Lock()
	if _, ok := t.values[name]; !ok {
		t.order = append(t.order, name)
	}
	t.values[name] = value
	t.mu.Unlock()
}

// Cached returns the value of name if it is resolved.
func (t *Table) Cached(name string) (any, bool) {
	t.mu.RLock()
	v, ok := t.values[name]
	t.mu.RUnlock()
	return v, ok
}

// Resolved reports whether name holds a value.
func (t *Table) Resolved(name string) bool {
	_, ok := t.Cached(name)
	return ok
}

// store caches value unless another resolution stored first, and returns
// the value every caller observes. A discarded value implementing io.Closer
// is closed.
func (t *Table) store(name string, value any) any {
	t.mu.Lock()
	existing, ok := t.values[name]
	if !ok {
		t.values[name] = value
		t.order = append(t.order, name)
	}
	t.mu.Unlock()
	if !ok {
		return value
	}
	if c, isCloser := value.(io.Closer); isCloser && c != existing {
		_ = c.Close()
	}
	return existing
}

// enter marks name as being resolved. With exclusive set it fails when a
// resolution of name is already running.
func (t *Table) enter(name string, exclusive bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if exclusive && slices.Contains(t.resolving, name) {
		return false
	}
	t.resolving = append(t.resolving, name)
	return true
}

func (t *Table) leave(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.resolving) - 1; i >= 0; i-- {
		if t.resolving[i] == name {
			t.resolving = slices.Delete(t.resolving, i, i+1)
			return
		}
	}
}

// Resolving returns the names whose builders are running, in start order.
func (t *Table) Resolving() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.resolving)
}

func (t *Table) inFlight(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Contains(t.resolving, name)
}

// Order returns the names holding a value in the order they were stored.
func (t *Table) Order() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

// Close closes every stored value implementing io.Closer and returns the
// joined errors.
func (t *Table) Close() error {
	names := t.Order()
	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		v, _ := t.Cached(names[i])
		if c, ok := v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", names[i], err))
			}
		}
	}
	return errors.Join(errs...)
}

func (t *Table) lockFor(name string) *sync.Mutex {
	t.mu.RLock()
	l, ok := t.locks[name]
	t.mu.RUnlock()
	if ok {
		return l
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok = t.locks[name]; !ok {
		l = &sync.Mutex{}
		t.locks[name] = l
	}
	return l
}

// Resolve returns the cached value of name or runs build and caches its
// result. Errors are not cached. Requesting a name that the call chain in
// ctx is already resolving fails with REENTRANT_RESOLUTION. Without thread
// safety the table serves one resolution of a name at a time, so a request
// for a name being resolved fails the same way even when ctx carries no
// resolution stack, as when a constructor calls a zero-argument accessor.
func (t *Table) Resolve(ctx context.Context, name string, build Builder) (any, error) {
	if v, ok := t.Cached(name); ok {
		return v, nil
	}
	f := currentFrame(ctx)
	if f.holds(t, name) {
		return nil, werrors.Reentrant(f.names(t), name)
	}
	if build == nil {
		return nil, werrors.UnknownEntry(name)
	}
	if !t.cfg.ThreadSafe {
		return t.run(ctx, f, name, false, build)
	}
	return t.resolveLocked(ctx, f, name, build)
}

// ResolveAsync resolves name on the worker pool. A cached value completes the
// Future immediately. The resolution is detached from ctx cancellation.
func (t *Table) ResolveAsync(ctx context.Context, name string, build Builder) *Future {
	if v, ok := t.Cached(name); ok {
		return Completed(v, nil)
	}
	return t.pool.Go(context.WithoutCancel(ctx), func(ctx context.Context) (any, error) {
		return t.Resolve(ctx, name, build)
	})
}

func (t *Table) run(ctx context.Context, parent *frame, name string, global bool, build Builder) (any, error) {
	if !t.enter(name, !t.cfg.ThreadSafe) {
		return nil, werrors.Reentrant(t.Resolving(), name)
	}
	defer t.leave(name)
	ctx = withFrame(ctx, &frame{table: t, name: name, global: global, parent: parent})
	ctx, end := t.obs.Begin(ctx, name)
	v, err := build(ctx)
	if err != nil {
		if errors.Is(err, errBusy) {
			end(nil)
		} else {
			end(err)
		}
		return nil, err
	}
	end(nil)
	return t.store(name, v), nil
}
