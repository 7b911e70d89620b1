package realm

import (
	"context"
	"testing"
	"time"

	"github.com/realmkit/realm-runtime/errors"
)

func TestPool_AcquireRelease(t *testing.T) {
	p := NewPool(Config{Name: "pooled"}, 2)
	defer p.Close()

	ctx := context.Background()

	a, err := p.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("pool handed out the same realm twice")
	}

	p.Release(a)

	c, err := p.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c != a {
		t.Fatal("expected the released realm back")
	}

	p.Release(b)
	p.Release(c)
}

func TestPool_WarmReuseKeepsState(t *testing.T) {
	p := NewPool(Config{}, 1)
	defer p.Close()

	ctx := context.Background()

	r, err := p.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.RunScript("globalThis.marker = 7"); err != nil {
		t.Fatal(err)
	}
	p.Release(r)

	r, err = p.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	v, err := r.RunScript("globalThis.marker")
	if err != nil {
		t.Fatal(err)
	}
	if v.ToInteger() != 7 {
		t.Fatalf("warm realm lost state, marker = %d", v.ToInteger())
	}
	p.Release(r)
}

func TestPool_AcquireTimeout(t *testing.T) {
	p := NewPool(Config{}, 1)
	defer p.Close()

	r, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release(r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.Acquire(ctx); err == nil {
		t.Fatal("acquire on an exhausted pool should respect the deadline")
	}
}

func TestPool_Closed(t *testing.T) {
	p := NewPool(Config{}, 1)

	r, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p.Close()

	if _, err := p.Acquire(context.Background()); !errors.IsKind(err, errors.KindTornDown) {
		t.Fatalf("got %v, want torn_down", err)
	}

	// Releasing into a closed pool tears the realm down
	p.Release(r)
	if ok := r.Schedule(nil, false, false); ok {
		t.Fatal("released realm should be closed")
	}
}
