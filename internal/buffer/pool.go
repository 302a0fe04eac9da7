// Package buffer implements the fixed-size buffer pool manager: it owns the
// frame array, the page table, the free list, and an LRU-K replacer, and
// mediates all access between higher layers and a block-addressed disk
// manager. See internal/replacer for the eviction policy and guard.go for
// the scoped pin/latch holders layered on top of FetchPage/NewPage.
package buffer

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arjunmenon/kvcore/internal/page"
	"github.com/arjunmenon/kvcore/internal/replacer"
)

// ErrNoCleanFrame is returned by NewPage/FetchPage when every frame is
// pinned and none can be evicted to make room. It is a normal, expected
// result of resource exhaustion, not a programmer error (spec §7).
var ErrNoCleanFrame = errors.New("buffer: no clean frame available")

// DiskManager is the external collaborator the pool reads from and writes
// to. Implementations: internal/disk.Manager (file-backed) and
// internal/disk.Memory (in-memory, for tests).
type DiskManager interface {
	ReadPage(id page.ID, dest *[page.Size]byte) error
	WritePage(id page.ID, src *[page.Size]byte) error
}

// WALGetter reports the LSN watermark up to which the write-ahead log is
// durable. It is optional: a nil WALGetter means flushes are never gated.
// Grounded on the teacher's WALFlushedLSNGetter interface.
type WALGetter interface {
	GetFlushedLSN() uint64
}

// Pool is the buffer pool manager. A single mutex covers the page table,
// free list, replacer, and every frame's metadata (spec §5): every
// operation below acquires it for its full duration, including the disk
// I/O performed while a clean frame is being produced.
type Pool struct {
	mu sync.Mutex

	frames    []page.Frame
	pageTable map[page.ID]page.FrameID
	freeList  []page.FrameID
	replacer  *replacer.LRUK

	disk DiskManager
	wal  WALGetter
	log  *zap.Logger

	nextPageID int64
}

// Option configures a Pool at construction.
type Option func(*Pool)

// WithLogger attaches a structured logger. Without this option, or with a
// nil logger, the pool logs nothing (zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithWAL attaches a WAL watermark getter; flushes of pages whose LSN is not
// yet covered by the watermark are skipped rather than written, mirroring
// the teacher's optional WAL-gated flush.
func WithWAL(w WALGetter) Option {
	return func(p *Pool) { p.wal = w }
}

// New constructs a pool of poolSize frames backed by disk, replacing via an
// LRU-K policy with history parameter k.
func New(poolSize, k int, disk DiskManager, opts ...Option) *Pool {
	p := &Pool{
		frames:    make([]page.Frame, poolSize),
		pageTable: make(map[page.ID]page.FrameID, poolSize),
		freeList:  make([]page.FrameID, poolSize),
		replacer:  replacer.New(poolSize, k),
		disk:      disk,
		log:       zap.NewNop(),
	}
	for i := range p.frames {
		p.frames[i].PageID = page.InvalidID
		p.freeList[i] = page.FrameID(i)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPage allocates a fresh page-id, pins it in a frame, and returns the
// frame. The frame's bytes are zeroed; the caller is responsible for
// initializing them (and for unpinning, directly or via a guard).
func (p *Pool) NewPage() (page.ID, *page.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, err := p.getCleanFrameLocked()
	if err != nil {
		return page.InvalidID, nil, err
	}

	id := page.ID(p.nextPageID)
	p.nextPageID++

	frame := &p.frames[fid]
	frame.PageID = id
	frame.PinCount = 1
	p.pageTable[id] = fid
	p.replacer.RecordAccess(fid)
	p.replacer.SetEvictable(fid, false)

	p.log.Debug("buffer: new page", zap.Int64("page_id", int64(id)), zap.Int32("frame_id", int32(fid)))
	return id, frame, nil
}

// FetchPage returns the frame holding id, pinning it (incrementing its pin
// count whether the page was already resident or had to be loaded from
// disk) and marking it non-evictable.
func (p *Pool) FetchPage(id page.ID) (*page.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fid, ok := p.pageTable[id]; ok {
		frame := &p.frames[fid]
		frame.PinCount++
		p.replacer.RecordAccess(fid)
		p.replacer.SetEvictable(fid, false)
		p.log.Debug("buffer: fetch hit", zap.Int64("page_id", int64(id)), zap.Int32("pin_count", frame.PinCount))
		return frame, nil
	}

	fid, err := p.getCleanFrameLocked()
	if err != nil {
		return nil, err
	}
	frame := &p.frames[fid]

	if err := p.disk.ReadPage(id, &frame.Data); err != nil {
		p.freeList = append(p.freeList, fid)
		return nil, fmt.Errorf("buffer: fetch page %d: %w", id, err)
	}

	frame.PageID = id
	frame.PinCount = 1
	p.pageTable[id] = fid
	p.replacer.RecordAccess(fid)
	p.replacer.SetEvictable(fid, false)

	p.log.Debug("buffer: fetch miss, loaded from disk", zap.Int64("page_id", int64(id)), zap.Int32("frame_id", int32(fid)))
	return frame, nil
}

// UnpinPage decrements id's pin count and OR-combines isDirty into the
// frame's dirty bit (never clearing it). The frame becomes evictable only
// once its pin count reaches zero. Returns false if id is not resident or
// already unpinned.
func (p *Pool) UnpinPage(id page.ID, isDirty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[id]
	if !ok {
		return false
	}
	frame := &p.frames[fid]
	if frame.PinCount <= 0 {
		return false
	}

	frame.IsDirty = frame.IsDirty || isDirty
	frame.PinCount--
	if frame.PinCount == 0 {
		p.replacer.SetEvictable(fid, true)
	}
	return true
}

// FlushPage writes id's frame to disk (clearing the dirty bit) if resident.
// Pin count and evictability are untouched. If a WAL watermark getter is
// attached and the page's LSN has not yet been covered, the flush is
// skipped (the page stays dirty) and FlushPage still returns true: the
// caller asked to flush a resident page, which is not itself an error.
func (p *Pool) FlushPage(id page.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked(id)
}

func (p *Pool) flushLocked(id page.ID) bool {
	fid, ok := p.pageTable[id]
	if !ok {
		return false
	}
	frame := &p.frames[fid]
	if p.wal != nil && frame.LSN > p.wal.GetFlushedLSN() {
		p.log.Debug("buffer: flush blocked, WAL not yet durable",
			zap.Int64("page_id", int64(id)), zap.Uint64("page_lsn", frame.LSN))
		return true
	}
	if err := p.disk.WritePage(id, &frame.Data); err != nil {
		p.log.Warn("buffer: flush failed", zap.Int64("page_id", int64(id)), zap.Error(err))
		return true
	}
	frame.IsDirty = false
	return true
}

// FlushAllPages flushes every resident page.
func (p *Pool) FlushAllPages() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id := range p.pageTable {
		p.flushLocked(id)
	}
}

// SetPageLSN records the log sequence number of the most recent write to
// id's frame, so a later FlushPage/FlushAllPages can be gated on WAL
// durability if a WALGetter is attached. No-op if id is not resident.
func (p *Pool) SetPageLSN(id page.ID, lsn uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if fid, ok := p.pageTable[id]; ok {
		p.frames[fid].LSN = lsn
	}
}

// DeletePage removes id from the pool, discarding any dirty contents.
// Returns true if id was not resident (idempotent) or was successfully
// removed; false if id is pinned.
func (p *Pool) DeletePage(id page.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[id]
	if !ok {
		return true
	}
	frame := &p.frames[fid]
	if frame.PinCount > 0 {
		return false
	}

	delete(p.pageTable, id)
	p.replacer.Remove(fid)
	frame.Reset()
	p.freeList = append(p.freeList, fid)
	return true
}

// getCleanFrameLocked produces a frame with no resident page, preferring
// the free list and falling back to replacer-driven eviction. Caller must
// hold p.mu.
func (p *Pool) getCleanFrameLocked() (page.FrameID, error) {
	if n := len(p.freeList); n > 0 {
		fid := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return fid, nil
	}

	fid, ok := p.replacer.Evict()
	if !ok {
		return 0, ErrNoCleanFrame
	}

	frame := &p.frames[fid]
	if frame.IsDirty {
		if err := p.disk.WritePage(frame.PageID, &frame.Data); err != nil {
			return 0, fmt.Errorf("buffer: writeback during eviction: %w", err)
		}
		frame.IsDirty = false
	}
	p.log.Debug("buffer: evicted frame", zap.Int32("frame_id", int32(fid)), zap.Int64("page_id", int64(frame.PageID)))
	delete(p.pageTable, frame.PageID)
	frame.Reset()
	return fid, nil
}
