package symbols

import (
	"context"
	"errors"
	"fmt"
)

// Args are the evaluated arguments of a constructor call. Empty groups are nil.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Constructor builds a component from its arguments.
type Constructor func(ctx context.Context, args Args) (any, error)

// Resolver finds constructors by locator.
type Resolver interface {
	// Resolve returns the constructor behind locator.
	Resolve(locator string) (Constructor, error)
	// LookupFactory returns the named factory of the constructor behind locator.
	LookupFactory(locator, factory string) (Constructor, error)
}

// ErrNotFound is wrapped by every lookup failure.
var ErrNotFound = errors.New("symbol not found")

// LookupError reports a locator or factory that could not be found.
type LookupError struct {
	Locator string
	Factory string
}

// Error returns the string representation of the error.
func (e *LookupError) Error() string {
	if e.Factory != "" {
		return fmt.Sprintf("symbols: factory %q of %q not found", e.Factory, e.Locator)
	}
	return fmt.Sprintf("symbols: constructor %q not found", e.Locator)
}

// Unwrap returns ErrNotFound.
func (e *LookupError) Unwrap() error { return ErrNotFound }
