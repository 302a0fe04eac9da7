package bptree

import (
	"encoding/binary"

	"github.com/arjunmenon/kvcore/internal/page"
)

// leaf pages append an 8-byte next-page-id right after the common header,
// pushing the entry array's start offset out by 8 relative to internal
// pages (spec §6: "leaf pages additionally include next-page-id").
const (
	offNextPageID  = headerSize
	leafEntriesOff = headerSize + 8
)

// LeafPage views a frame's bytes as a B+-tree leaf node: size (key, RID)
// pairs in sorted order plus a sibling pointer for range scans.
type LeafPage[K any] struct {
	basePage[K, RID]
}

// NewLeafPage wraps buf as a leaf-page view using keyCodec for its
// fixed-width key type. Callers must Init a fresh page before use.
func NewLeafPage[K any](buf *[page.Size]byte, keyCodec Codec[K]) *LeafPage[K] {
	return &LeafPage[K]{basePage[K, RID]{
		buf:        buf,
		entriesOff: leafEntriesOff,
		keyCodec:   keyCodec,
		valCodec:   RIDCodec,
	}}
}

// Init stamps the page as a leaf page with the given max size, zero
// occupied slots, and no next sibling.
func (lp *LeafPage[K]) Init(maxSize int) {
	lp.init(LeafType, maxSize)
	lp.SetNextPageId(page.InvalidID)
}

// GetNextPageId returns the sibling leaf to the right, or page.InvalidID if
// this is the last leaf in the chain.
func (lp *LeafPage[K]) GetNextPageId() page.ID {
	return page.ID(binary.LittleEndian.Uint64(lp.buf[offNextPageID:]))
}

// SetNextPageId sets the sibling leaf pointer.
func (lp *LeafPage[K]) SetNextPageId(id page.ID) {
	binary.LittleEndian.PutUint64(lp.buf[offNextPageID:], uint64(id))
}

// Get performs a lower-bound search for key; returns the stored RID and
// true iff the found slot's key compares equal to key.
func (lp *LeafPage[K]) Get(key K, cmp Comparator[K]) (RID, bool) {
	i := lp.Index(key, cmp)
	if i < lp.Size() && cmp(lp.KeyAt(i), key) == 0 {
		return lp.ValueAt(i), true
	}
	return RID{}, false
}

// Split moves the right half of lp's entries into other, which must be a
// freshly Init'ed, empty LeafPage. The split point is floor(max_size/2),
// keeping the smaller (or equal) half on the left (spec §4.4); the caller
// is responsible for re-linking sibling pointers afterward.
func (lp *LeafPage[K]) Split(other *LeafPage[K]) {
	splitPoint := lp.MaxSize() / 2
	lp.split(&other.basePage, splitPoint)
}
