package resolve

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool runs resolutions on a bounded number of goroutines.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a Pool running at most workers resolutions at once.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Go runs fn once a worker is free and returns its Future immediately.
func (p *Pool) Go(ctx context.Context, fn func(ctx context.Context) (any, error)) *Future {
	f := newFuture()
	go func() {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			f.complete(nil, err)
			return
		}
		defer p.sem.Release(1)
		f.complete(fn(ctx))
	}()
	return f
}
