package di

import (
	"context"

	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/resolve"
)

// AsyncAccessor starts resolving one entry with a background context.
type AsyncAccessor func() *resolve.Future

// Aio resolves entries on the container's worker pool.
type Aio struct {
	c *Container
}

// Get returns a Future of the instance of name. Cached instances complete
// immediately.
func (a *Aio) Get(ctx context.Context, name string) *resolve.Future {
	build, ok := a.c.builders[name]
	if !ok {
		return resolve.Completed(nil, werrors.UnknownEntry(name))
	}
	return a.c.table.ResolveAsync(ctx, name, build)
}

// Accessor returns the asynchronous accessor of name.
func (a *Aio) Accessor(name string) (AsyncAccessor, error) {
	if !a.c.Has(name) {
		return nil, werrors.UnknownEntry(name)
	}
	return func() *resolve.Future { return a.Get(context.Background(), name) }, nil
}
