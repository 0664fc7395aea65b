package resolve

import (
	"context"
)

// Future is the pending result of an asynchronous resolution.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Completed returns a Future that already holds its result.
func Completed(value any, err error) *Future {
	f := newFuture()
	f.complete(value, err)
	return f
}

func (f *Future) complete(value any, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Await blocks until the result is available or ctx is done. Giving up does
// not stop the resolution, which still populates the cache.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
