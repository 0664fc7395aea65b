package resolve

import (
	"context"
)

// Observer receives resolution events of a Table.
type Observer interface {
	// Begin is called before the builder of name runs. The returned context
	// is passed to the builder and end receives the builder's error.
	Begin(ctx context.Context, name string) (context.Context, func(err error))
	// Contended is called when the entry lock of name is held elsewhere.
	Contended(ctx context.Context, name string)
}

type nopObserver struct{}

func (nopObserver) Begin(ctx context.Context, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}

func (nopObserver) Contended(context.Context, string) {}
