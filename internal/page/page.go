// Package page defines the fixed-size page and the in-memory frame that
// holds one resident page inside the buffer pool.
package page

// Size is the fixed size, in bytes, of every page and every frame's backing
// array. 4096 matches the conventional disk block size used throughout the
// storage engine.
const Size = 4096

// ID identifies a page. Pages are allocated by a monotonic counter owned by
// the buffer pool; InvalidID is reserved and is never assigned.
type ID int64

// InvalidID is the sentinel page-id, used to mean "no page".
const InvalidID ID = -1

// FrameID identifies a slot in the buffer pool's frame array, in [0, pool_size).
type FrameID int32

// Frame is a slot in the buffer pool. It either holds one resident page or is
// free. All mutable frame state (page id, dirty bit, pin count) is guarded by
// the buffer pool's single pool latch — Frame itself holds no lock for that
// state. The Latch field is the independent per-frame reader/writer latch
// used by page guards (spec §5, "per-page latches"), which is intentionally
// decoupled from the pool latch.
type Frame struct {
	PageID   ID
	Data     [Size]byte
	IsDirty  bool
	PinCount int32
	LSN      uint64 // log sequence number of the last write, for WAL-gated flush
	Latch    RWLatch
}

// Reset restores a frame to its just-freed state: no page, clean, unpinned.
// The backing array is zeroed so a stale page's bytes never leak into a
// newly assigned page.
func (f *Frame) Reset() {
	f.PageID = InvalidID
	f.IsDirty = false
	f.PinCount = 0
	f.LSN = 0
	f.Data = [Size]byte{}
}
