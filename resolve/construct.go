package resolve

import (
	"context"

	"github.com/kbukum/wirekit/symbols"
)

// Construct finds the constructor behind locator, or its named factory, and
// calls it with args. Lookup and constructor errors are returned unchanged.
func Construct(ctx context.Context, r symbols.Resolver, locator, factory string, args symbols.Args) (any, error) {
	var (
		ctor symbols.Constructor
		err  error
	)
	if factory == "" {
		ctor, err = r.Resolve(locator)
	} else {
		ctor, err = r.LookupFactory(locator, factory)
	}
	if err != nil {
		return nil, err
	}
	return ctor(ctx, args)
}
