package realm

import (
	"context"
	"sync"

	"github.com/realmkit/realm-runtime/errors"
)

// Pool manages a fixed set of warm realms. Acquired realms keep whatever
// global state earlier users left behind; callers needing a pristine heap
// should create a fresh realm instead.
type Pool struct {
	cfg    Config
	realms chan *Realm
	size   int
	mu     sync.RWMutex
	closed bool
}

// NewPool creates size realms up front.
func NewPool(cfg Config, size int) *Pool {
	if size <= 0 {
		size = 4
	}

	p := &Pool{
		cfg:    cfg,
		realms: make(chan *Realm, size),
		size:   size,
	}
	for i := 0; i < size; i++ {
		p.realms <- New(cfg)
	}
	return p
}

// Acquire takes a realm from the pool, waiting until one is free or ctx
// expires.
func (p *Pool) Acquire(ctx context.Context) (*Realm, error) {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return nil, errors.TornDown("pool")
	}

	select {
	case r := <-p.realms:
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a realm to the pool. If the pool has been closed in the
// meantime, the realm is torn down instead.
func (p *Pool) Release(r *Realm) {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		r.Close()
		return
	}

	select {
	case p.realms <- r:
	default:
		// Pool is full; a foreign realm was handed back
		r.Close()
	}
}

// Close tears down every pooled realm. Realms currently acquired are torn
// down when released.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case r := <-p.realms:
			r.Close()
		default:
			return
		}
	}
}
