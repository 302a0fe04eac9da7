package bptree

import (
	"github.com/arjunmenon/kvcore/internal/page"
)

// InternalPage views a frame's bytes as a B+-tree internal node: size
// children (page-ids) separated by size-1 real keys, with slot 0's key
// unused ("less than all keys"). NewInternalPage does not call Init; callers
// must Init a fresh page before using it, and must not Init one already in
// use (that would discard its contents).
type InternalPage[K any] struct {
	basePage[K, page.ID]
}

// NewInternalPage wraps buf, a buffer-pool frame's backing array, as an
// internal-page view using keyCodec for its fixed-width key type.
func NewInternalPage[K any](buf *[page.Size]byte, keyCodec Codec[K]) *InternalPage[K] {
	return &InternalPage[K]{basePage[K, page.ID]{
		buf:        buf,
		entriesOff: headerSize,
		keyCodec:   keyCodec,
		valCodec:   PageIDCodec,
	}}
}

// Init stamps the page as an internal page with the given max size and
// zero occupied slots.
func (ip *InternalPage[K]) Init(maxSize int) {
	ip.init(InternalType, maxSize)
}

// ValueIndex returns the first index whose child page-id equals v, or
// Size() if v is not a child of this page.
func (ip *InternalPage[K]) ValueIndex(v page.ID) int {
	size := ip.Size()
	for i := 0; i < size; i++ {
		if ip.ValueAt(i) == v {
			return i
		}
	}
	return size
}

// Get descends for key: an upper-bound search over keys[1:size) followed by
// stepping back one slot, returning the child page-id to follow. Slot 0's
// key is logically -infinity, so it is never compared against directly.
func (ip *InternalPage[K]) Get(key K, cmp Comparator[K]) page.ID {
	size := ip.Size()
	lo, hi := 1, size
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(ip.KeyAt(mid), key) > 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return ip.ValueAt(lo - 1)
}

// Split moves the right half of ip's entries into other, which must be a
// freshly Init'ed, empty InternalPage. The split point keeps
// ceil((max_size+1)/2) entries on the left, one more than an even split, to
// anchor the child pointer that precedes the first real promoted key
// (spec §4.4).
func (ip *InternalPage[K]) Split(other *InternalPage[K]) {
	splitPoint := (ip.MaxSize() + 1 + 1) / 2
	ip.split(&other.basePage, splitPoint)
}
