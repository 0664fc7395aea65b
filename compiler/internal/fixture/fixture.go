// Package fixture is the specification the generated test containers are
// built from.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/wirekit/spec"
	"github.com/kbukum/wirekit/symbols"
)

// Spec returns the fixture specification: eager constants, components with
// keyword, positional and factory arguments, promoted constants, an entry
// with a dangling reference, and components whose construction fails.
func Spec() spec.Spec {
	return spec.Spec{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: 5432},
		{Key: "dsn", Value: "postgres://{host}:{port}/app"},
		{Key: "tags", Value: []any{"primary", 2}},
		{Key: "Store db", Value: map[string]any{"dsn": "{dsn}", "pool": 4}},
		{Key: "Cache cache", Value: map[any]any{0: "{db}", 1: 16}},
		{Key: "Store replica.Replica", Value: []any{"{db}"}},
		{Key: "label", Value: "cache over {db}"},
		{Key: "settings", Value: map[string]any{"store": "{db}", "ttl": 30}},
		{Key: "broken", Value: "{missing}"},
		{Key: "Ghost ghost", Value: nil},
		{Key: "Store orphan.Nope", Value: nil},
		{Key: "Fail failing", Value: []any{"{host}"}},
	}
}

// ErrRefused is returned by the Fail constructor.
var ErrRefused = errors.New("fixture: construction refused")

// Object is an instance built by the fixture registry.
type Object struct {
	Kind string
	Seq  int64
	Args symbols.Args
}

func (o *Object) String() string { return fmt.Sprintf("%s#%d", o.Kind, o.Seq) }

// Counter counts constructor calls per kind.
type Counter struct {
	store, cache, replica atomic.Int64
}

// Calls returns the number of instances built of kind.
func (c *Counter) Calls(kind string) int64 {
	switch kind {
	case "Store":
		return c.store.Load()
	case "Cache":
		return c.cache.Load()
	case "Replica":
		return c.replica.Load()
	}
	return 0
}

// Registry returns a registry serving every locator of Spec except Ghost and
// the Nope factory, and the counter of its constructor calls.
func Registry() (*symbols.Registry, *Counter) {
	n := &Counter{}
	build := func(kind string, seq *atomic.Int64) symbols.Constructor {
		return func(_ context.Context, args symbols.Args) (any, error) {
			return &Object{Kind: kind, Seq: seq.Add(1), Args: args}, nil
		}
	}
	r := symbols.NewRegistry().
		MustRegister("Store", build("Store", &n.store), symbols.WithFactory("Replica", build("Replica", &n.replica))).
		MustRegister("Cache", build("Cache", &n.cache)).
		MustRegister("Fail", func(context.Context, symbols.Args) (any, error) {
			return nil, ErrRefused
		})
	return r, n
}
