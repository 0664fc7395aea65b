package resolve

import (
	"context"
	"errors"
	"sync"

	"github.com/cenkalti/backoff/v5"

	werrors "github.com/kbukum/wirekit/errors"
)

// errBusy makes a nested resolution under the container-wide lock give up
// instead of blocking; the outermost attempt is then retried.
var errBusy = errors.New("resolve: entry lock busy")

// resolveLocked runs the two-level protocol: an optimistic per-entry lock,
// then bounded attempts on the container-wide lock.
func (t *Table) resolveLocked(ctx context.Context, f *frame, name string, build Builder) (any, error) {
	lock := t.lockFor(name)

	if f.inGlobal(t) {
		if !lock.TryLock() {
			return nil, errBusy
		}
		defer lock.Unlock()
		return t.runIfEmpty(ctx, f, name, true, build)
	}

	if lock.TryLock() {
		defer lock.Unlock()
		return t.runIfEmpty(ctx, f, name, false, build)
	}

	t.obs.Contended(ctx, name)
	return t.fallback(ctx, f, name, lock, build)
}

func (t *Table) runIfEmpty(ctx context.Context, f *frame, name string, global bool, build Builder) (any, error) {
	if v, ok := t.Cached(name); ok {
		return v, nil
	}
	return t.run(ctx, f, name, global, build)
}

// fallback retries under the container-wide lock, re-checking the cache on
// every attempt.
func (t *Table) fallback(ctx context.Context, f *frame, name string, lock *sync.Mutex, build Builder) (any, error) {
	attempt := func() (any, error) {
		if v, ok := t.Cached(name); ok {
			return v, nil
		}
		if !t.global.TryLock() {
			return nil, errBusy
		}
		defer t.global.Unlock()
		if !lock.TryLock() {
			return nil, errBusy
		}
		defer lock.Unlock()

		v, err := t.runIfEmpty(ctx, f, name, true, build)
		if err != nil && !errors.Is(err, errBusy) {
			return nil, backoff.Permanent(err)
		}
		return v, err
	}

	v, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(backoff.NewConstantBackOff(t.cfg.LockRetrySleep)),
		backoff.WithMaxTries(uint(t.cfg.MaxLockAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if errors.Is(err, errBusy) {
		return nil, t.unavailable(f, name)
	}
	return v, err
}

// unavailable builds the LOCK_UNAVAILABLE error of name. A caller without a
// resolution stack cannot be told apart from a concurrent caller, so a
// request for a name still being resolved is flagged in_flight instead of
// being reported as reentrant.
func (t *Table) unavailable(f *frame, name string) error {
	err := werrors.LockUnavailable(name, t.cfg.MaxLockAttempts)
	if len(f.names(t)) == 0 && t.inFlight(name) {
		err = err.WithDetail("in_flight", true).WithDetail("resolving", t.Resolving())
	}
	return err
}
