package di

import (
	"context"
	"fmt"
)

// Getter is implemented by runtime and generated containers.
type Getter interface {
	Get(ctx context.Context, name string) (any, error)
}

// Resolve returns the instance of name as a T.
//
//	db, err := di.Resolve[*sql.DB](ctx, c, "db")
func Resolve[T any](ctx context.Context, c Getter, name string) (T, error) {
	var zero T
	instance, err := c.Get(ctx, name)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: entry %s is %T, expected %T", name, instance, zero)
	}
	return result, nil
}

// MustResolve is Resolve that panics on failure.
func MustResolve[T any](ctx context.Context, c Getter, name string) T {
	result, err := Resolve[T](ctx, c, name)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", name, err))
	}
	return result
}

// TryResolve reports false instead of failing.
//
//	if m, ok := di.TryResolve[*Metrics](ctx, c, "metrics"); ok {
//		m.Record()
//	}
func TryResolve[T any](ctx context.Context, c Getter, name string) (T, bool) {
	result, err := Resolve[T](ctx, c, name)
	return result, err == nil
}
