package buffer

import (
	"sync"

	"github.com/arjunmenon/kvcore/internal/page"
)

// BasicGuard couples one pinned frame to lexical scope: it unpins exactly
// once, on its first Drop, with whatever dirty flag was set via SetDirty.
// Go has no destructors, so callers must `defer guard.Drop()` themselves or
// use the With* helpers below, which do it for them — including across a
// panic.
type BasicGuard struct {
	pool   *Pool
	frame  *page.Frame
	pageID page.ID
	dirty  bool
	once   sync.Once
}

func newBasicGuard(pool *Pool, id page.ID, frame *page.Frame) *BasicGuard {
	return &BasicGuard{pool: pool, frame: frame, pageID: id}
}

// PageID returns the guarded page's id.
func (g *BasicGuard) PageID() page.ID { return g.pageID }

// Data returns the guarded frame's backing bytes. Valid until Drop.
func (g *BasicGuard) Data() *[page.Size]byte { return &g.frame.Data }

// SetDirty marks the frame dirty for propagation at unpin time.
func (g *BasicGuard) SetDirty() { g.dirty = true }

// Drop unpins the frame with the current dirty flag. Safe to call multiple
// times or not at all from a deferred call after an earlier explicit Drop;
// only the first call has effect.
func (g *BasicGuard) Drop() {
	g.once.Do(func() {
		g.pool.UnpinPage(g.pageID, g.dirty)
	})
}

// ReadGuard is a BasicGuard that also holds the frame's reader latch for
// its lifetime, released before the unpin on Drop.
type ReadGuard struct {
	pool   *Pool
	frame  *page.Frame
	pageID page.ID
	once   sync.Once
}

func newReadGuard(pool *Pool, id page.ID, frame *page.Frame) *ReadGuard {
	frame.Latch.RLock()
	return &ReadGuard{pool: pool, frame: frame, pageID: id}
}

// PageID returns the guarded page's id.
func (g *ReadGuard) PageID() page.ID { return g.pageID }

// Data returns the guarded frame's backing bytes, readable while held.
func (g *ReadGuard) Data() *[page.Size]byte { return &g.frame.Data }

// Drop releases the reader latch and unpins the frame (never dirty — a
// reader never modifies the page).
func (g *ReadGuard) Drop() {
	g.once.Do(func() {
		g.frame.Latch.RUnlock()
		g.pool.UnpinPage(g.pageID, false)
	})
}

// WriteGuard is a BasicGuard that also holds the frame's writer latch for
// its lifetime, released before the unpin on Drop. A per-guard mutex guards
// the dirty flag against a concurrent SetDirty, and a sync.Once lets only the
// first Drop take effect, so two goroutines racing to drop the same guard
// (e.g. one via defer, one explicitly) cannot double-unpin or
// double-unlock — the Go analogue of the spec's "moves are serialized by a
// per-guard latch" requirement.
type WriteGuard struct {
	mu     sync.Mutex
	pool   *Pool
	frame  *page.Frame
	pageID page.ID
	dirty  bool
	once   sync.Once
}

func newWriteGuard(pool *Pool, id page.ID, frame *page.Frame) *WriteGuard {
	frame.Latch.Lock()
	return &WriteGuard{pool: pool, frame: frame, pageID: id}
}

// PageID returns the guarded page's id.
func (g *WriteGuard) PageID() page.ID { return g.pageID }

// Data returns the guarded frame's backing bytes, writable while held.
func (g *WriteGuard) Data() *[page.Size]byte { return &g.frame.Data }

// SetDirty marks the frame dirty for propagation at unpin time.
func (g *WriteGuard) SetDirty() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dirty = true
}

// Drop releases the writer latch and unpins the frame.
func (g *WriteGuard) Drop() {
	g.mu.Lock()
	dirty := g.dirty
	g.mu.Unlock()

	g.once.Do(func() {
		g.frame.Latch.Unlock()
		g.pool.UnpinPage(g.pageID, dirty)
	})
}

// FetchPageBasic fetches id and wraps it in a pin-only BasicGuard.
func (p *Pool) FetchPageBasic(id page.ID) (*BasicGuard, error) {
	frame, err := p.FetchPage(id)
	if err != nil {
		return nil, err
	}
	return newBasicGuard(p, id, frame), nil
}

// FetchPageRead fetches id and wraps it in a ReadGuard, taking the frame's
// reader latch after the pool latch has been released (spec §5: the pool
// latch must be released before a caller takes a page latch via a guard).
func (p *Pool) FetchPageRead(id page.ID) (*ReadGuard, error) {
	frame, err := p.FetchPage(id)
	if err != nil {
		return nil, err
	}
	return newReadGuard(p, id, frame), nil
}

// FetchPageWrite fetches id and wraps it in a WriteGuard, taking the
// frame's writer latch after the pool latch has been released.
func (p *Pool) FetchPageWrite(id page.ID) (*WriteGuard, error) {
	frame, err := p.FetchPage(id)
	if err != nil {
		return nil, err
	}
	return newWriteGuard(p, id, frame), nil
}

// NewPageGuarded allocates a page and wraps it in a WriteGuard: a freshly
// allocated page is exposed for write access to its first owner by default.
func (p *Pool) NewPageGuarded() (page.ID, *WriteGuard, error) {
	id, frame, err := p.NewPage()
	if err != nil {
		return page.InvalidID, nil, err
	}
	return id, newWriteGuard(p, id, frame), nil
}

// WithRead fetches id, passes a ReadGuard to fn, and drops the guard
// unconditionally afterward — including if fn panics — emulating the
// destructor-driven scope the spec describes for languages that have one.
func WithRead(p *Pool, id page.ID, fn func(*ReadGuard) error) error {
	g, err := p.FetchPageRead(id)
	if err != nil {
		return err
	}
	defer g.Drop()
	return fn(g)
}

// WithWrite fetches id, passes a WriteGuard to fn, and drops the guard
// unconditionally afterward, including on panic.
func WithWrite(p *Pool, id page.ID, fn func(*WriteGuard) error) error {
	g, err := p.FetchPageWrite(id)
	if err != nil {
		return err
	}
	defer g.Drop()
	return fn(g)
}
