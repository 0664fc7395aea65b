package resolve

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolveAsync_Value(t *testing.T) {
	tbl := newTable(t)
	var calls int32
	f := tbl.ResolveAsync(context.Background(), "a", counting(&calls))
	v, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	again, _ := tbl.ResolveAsync(context.Background(), "a", counting(&calls)).Await(context.Background())
	if again != v {
		t.Error("expected cached instance")
	}
	sync, _ := tbl.Resolve(context.Background(), "a", counting(&calls))
	if sync != v {
		t.Error("expected synchronous access to share the cache")
	}
	if calls != 1 {
		t.Errorf("expected 1 build, got %d", calls)
	}
}

func TestResolveAsync_CachedCompletesImmediately(t *testing.T) {
	tbl := newTable(t)
	tbl.Seed("a", "seeded")
	f := tbl.ResolveAsync(context.Background(), "a", nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("expected completed future")
	}
}

func TestResolveAsync_CancelledAwaitStillCaches(t *testing.T) {
	tbl := newTable(t)
	release := make(chan struct{})
	build := func(context.Context) (any, error) {
		<-release
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := tbl.ResolveAsync(ctx, "a", build)
	cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(release)
	v, err := f.Await(context.Background())
	if err != nil || v != "late" {
		t.Fatalf("expected worker to finish, got %v, %v", v, err)
	}
	if !tbl.Resolved("a") {
		t.Error("expected the cache to be populated")
	}
}

func TestPool_Bounded(t *testing.T) {
	p := NewPool(2)
	var running, peak int32
	futures := make([]*Future, 6)
	for i := range futures {
		futures[i] = p.Go(context.Background(), func(context.Context) (any, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		})
	}
	for _, f := range futures {
		if _, err := f.Await(context.Background()); err != nil {
			t.Fatalf("Await failed: %v", err)
		}
	}
	if peak > 2 {
		t.Errorf("expected at most 2 concurrent workers, got %d", peak)
	}
}

func TestCompleted(t *testing.T) {
	boom := errors.New("boom")
	_, err := Completed(nil, boom).Await(context.Background())
	if err != boom {
		t.Errorf("expected boom, got %v", err)
	}
}
