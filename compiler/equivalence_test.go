package compiler_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/kbukum/wirekit/compiler/internal/fixture"
	"github.com/kbukum/wirekit/compiler/internal/wired/aio"
	"github.com/kbukum/wirekit/compiler/internal/wired/aiolocked"
	"github.com/kbukum/wirekit/compiler/internal/wired/locked"
	"github.com/kbukum/wirekit/compiler/internal/wired/plain"
	"github.com/kbukum/wirekit/di"
	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/resolve"
	"github.com/kbukum/wirekit/symbols"
)

type container interface {
	Get(ctx context.Context, name string) (any, error)
	Names() []string
	Close() error
}

type generated struct {
	name       string
	threadSafe bool
	new        func(r symbols.Resolver) (container, error)
}

var containers = []generated{
	{"plain", false, func(r symbols.Resolver) (container, error) { return plain.New(r) }},
	{"aio", false, func(r symbols.Resolver) (container, error) { return aio.New(r) }},
	{"locked", true, func(r symbols.Resolver) (container, error) { return locked.New(r) }},
	{"aiolocked", true, func(r symbols.Resolver) (container, error) { return aiolocked.New(r) }},
}

func runtimeContainer(t *testing.T, threadSafe bool) (*di.Container, *fixture.Counter) {
	t.Helper()
	r, n := fixture.Registry()
	c, err := di.New(fixture.Spec(), r, di.WithLogger(logger.Nop()), di.WithThreadSafe(threadSafe))
	if err != nil {
		t.Fatalf("di.New failed: %v", err)
	}
	return c, n
}

func TestGenerated_MatchesRuntime(t *testing.T) {
	ctx := context.Background()
	for _, g := range containers {
		t.Run(g.name, func(t *testing.T) {
			want, _ := runtimeContainer(t, g.threadSafe)
			r, _ := fixture.Registry()
			got, err := g.new(r)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !reflect.DeepEqual(got.Names(), want.Names()) {
				t.Errorf("expected names %v, got %v", want.Names(), got.Names())
			}
			for _, name := range want.Names() {
				wv, werr := want.Get(ctx, name)
				gv, gerr := got.Get(ctx, name)
				compareResults(t, name, wv, werr, gv, gerr)
			}
			if _, err := got.Get(ctx, "nope"); !werrors.Is(err, werrors.ErrCodeUnknownEntry) {
				t.Errorf("expected UNKNOWN_ENTRY, got %v", err)
			}
		})
	}
}

// compareResults fails unless both results carry the same value, or errors
// of the same kind: wiring code, symbol lookup target or constructor cause.
func compareResults(t *testing.T, name string, wv any, werr error, gv any, gerr error) {
	t.Helper()
	if (werr == nil) != (gerr == nil) {
		t.Errorf("%s: expected error %v, got %v", name, werr, gerr)
		return
	}
	if werr == nil {
		if !reflect.DeepEqual(wv, gv) {
			t.Errorf("%s: expected %#v, got %#v", name, wv, gv)
		}
		return
	}
	if werrors.CodeOf(werr) != werrors.CodeOf(gerr) {
		t.Errorf("%s: expected code %q, got %q", name, werrors.CodeOf(werr), werrors.CodeOf(gerr))
	}
	if errors.Is(werr, symbols.ErrNotFound) != errors.Is(gerr, symbols.ErrNotFound) {
		t.Errorf("%s: symbol lookup mismatch: %v vs %v", name, werr, gerr)
	}
	var wl, gl *symbols.LookupError
	if errors.As(werr, &wl) != errors.As(gerr, &gl) || (wl != nil && *wl != *gl) {
		t.Errorf("%s: expected lookup error %v, got %v", name, werr, gerr)
	}
	if errors.Is(werr, fixture.ErrRefused) != errors.Is(gerr, fixture.ErrRefused) {
		t.Errorf("%s: constructor error mismatch: %v vs %v", name, werr, gerr)
	}
}

func TestGenerated_AioMatchesRuntime(t *testing.T) {
	ctx := context.Background()
	type aioContainer interface {
		Names() []string
		Get(ctx context.Context, name string) *resolve.Future
	}
	tests := []struct {
		name       string
		threadSafe bool
		new        func(r symbols.Resolver) (aioContainer, error)
	}{
		{"aio", false, func(r symbols.Resolver) (aioContainer, error) {
			c, err := aio.New(r)
			if err != nil {
				return nil, err
			}
			return aioGetter{c.Names, c.Aio().Get}, nil
		}},
		{"aiolocked", true, func(r symbols.Resolver) (aioContainer, error) {
			c, err := aiolocked.New(r)
			if err != nil {
				return nil, err
			}
			return aioGetter{c.Names, c.Aio().Get}, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := runtimeContainer(t, tt.threadSafe)
			r, _ := fixture.Registry()
			got, err := tt.new(r)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !reflect.DeepEqual(got.Names(), want.Names()) {
				t.Errorf("expected names %v, got %v", want.Names(), got.Names())
			}
			for _, name := range want.Names() {
				wv, werr := want.Aio().Get(ctx, name).Await(ctx)
				gv, gerr := got.Get(ctx, name).Await(ctx)
				compareResults(t, name, wv, werr, gv, gerr)
			}
			_, werr := want.Aio().Get(ctx, "nope").Await(ctx)
			_, gerr := got.Get(ctx, "nope").Await(ctx)
			compareResults(t, "nope", nil, werr, nil, gerr)
		})
	}
}

type aioGetter struct {
	names func() []string
	get   func(ctx context.Context, name string) *resolve.Future
}

func (a aioGetter) Names() []string { return a.names() }

func (a aioGetter) Get(ctx context.Context, name string) *resolve.Future { return a.get(ctx, name) }

func TestGenerated_ConstructionFailures(t *testing.T) {
	ctx := context.Background()
	for _, g := range containers {
		t.Run(g.name, func(t *testing.T) {
			r, _ := fixture.Registry()
			c, err := g.new(r)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			_, err = c.Get(ctx, "ghost")
			var lookup *symbols.LookupError
			if !errors.As(err, &lookup) || lookup.Locator != "Ghost" || lookup.Factory != "" {
				t.Errorf("ghost: expected lookup error for Ghost, got %v", err)
			}
			if !errors.Is(err, symbols.ErrNotFound) {
				t.Errorf("ghost: expected ErrNotFound, got %v", err)
			}

			_, err = c.Get(ctx, "orphan")
			if !errors.As(err, &lookup) || lookup.Locator != "Store" || lookup.Factory != "Nope" {
				t.Errorf("orphan: expected lookup error for Store.Nope, got %v", err)
			}

			_, err = c.Get(ctx, "failing")
			if err != fixture.ErrRefused {
				t.Errorf("failing: expected the constructor error unchanged, got %v", err)
			}
			for _, name := range []string{"ghost", "orphan", "failing"} {
				if _, err := c.Get(ctx, name); err == nil {
					t.Errorf("%s: failures must not be cached", name)
				}
			}
		})
	}
}

func TestGenerated_Values(t *testing.T) {
	ctx := context.Background()
	r, n := fixture.Registry()
	c, err := plain.New(r)
	if err != nil {
		t.Fatal(err)
	}

	dsn, _ := c.Dsn(ctx)
	if dsn != "postgres://localhost:5432/app" {
		t.Errorf("unexpected dsn %v", dsn)
	}
	db, err := c.Db(ctx)
	if err != nil {
		t.Fatalf("Db failed: %v", err)
	}
	obj := db.(*fixture.Object)
	if obj.Args.Keyword["dsn"] != dsn || obj.Args.Keyword["pool"] != 4 {
		t.Errorf("unexpected keyword arguments %v", obj.Args.Keyword)
	}
	cache, _ := c.Cache(ctx)
	if cache.(*fixture.Object).Args.Positional[0] != db {
		t.Error("expected the cached db instance as first positional argument")
	}
	label, _ := c.Label(ctx)
	if label != "cache over Store#1" {
		t.Errorf("unexpected label %v", label)
	}
	settings, _ := c.Settings(ctx)
	if settings.(map[string]any)["store"] != db {
		t.Error("expected the cached db instance in settings")
	}
	again, _ := c.Get(ctx, "db")
	if again != db || n.Calls("Store") != 1 {
		t.Errorf("expected one Store instance, got %d", n.Calls("Store"))
	}
	if _, err := c.Broken(ctx); !werrors.Is(err, werrors.ErrCodeUnknownReference) {
		t.Errorf("expected UNKNOWN_REFERENCE, got %v", err)
	}
}

func TestGenerated_Aio(t *testing.T) {
	ctx := context.Background()
	r, n := fixture.Registry()
	c, err := aiolocked.New(r, resolve.WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	a := c.Aio()

	const callers = 16
	futures := make([]*resolve.Future, callers)
	var wg sync.WaitGroup
	for i := range futures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			futures[i] = a.Replica(ctx)
		}(i)
	}
	wg.Wait()

	var first any
	for i, f := range futures {
		v, err := f.Await(ctx)
		if err != nil {
			t.Fatalf("Await failed: %v", err)
		}
		if i == 0 {
			first = v
		} else if v != first {
			t.Error("expected one replica instance across callers")
		}
	}
	if n.Calls("Replica") != 1 || n.Calls("Store") != 1 {
		t.Errorf("expected one Replica and one Store, got %d and %d", n.Calls("Replica"), n.Calls("Store"))
	}

	port, err := a.Get(ctx, "port").Await(ctx)
	if err != nil || port != 5432 {
		t.Errorf("expected 5432, got %v, %v", port, err)
	}
	if _, err := a.Get(ctx, "nope").Await(ctx); !werrors.Is(err, werrors.ErrCodeUnknownEntry) {
		t.Errorf("expected UNKNOWN_ENTRY, got %v", err)
	}
	if _, err := a.Broken(ctx).Await(ctx); !werrors.Is(err, werrors.ErrCodeUnknownReference) {
		t.Errorf("expected UNKNOWN_REFERENCE, got %v", err)
	}
}

func TestGenerated_TypedHelpers(t *testing.T) {
	r, _ := fixture.Registry()
	c, err := locked.New(r)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := di.Resolve[*fixture.Object](context.Background(), c, "replica")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if obj.Kind != "Replica" {
		t.Errorf("expected a Replica, got %s", obj)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
