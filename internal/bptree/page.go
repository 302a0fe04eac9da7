// Package bptree implements the in-frame layout of B+-tree internal and leaf
// pages: fixed-width key/value arrays packed into a buffer-pool frame, with
// the search/insert/split primitives the tree descent algorithm is built on.
// The tree algorithm itself (which child to descend into, when to split a
// parent, merge/redistribute on delete) lives outside this package.
package bptree

import (
	"encoding/binary"

	"github.com/arjunmenon/kvcore/internal/page"
)

// PageType distinguishes an internal page (child page-ids) from a leaf page
// (record-ids), stamped in the page's header by Init.
type PageType uint8

const (
	Invalid PageType = iota
	InternalType
	LeafType
)

// Comparator is a strict weak order over keys: negative if a < b, zero if
// equal, positive if a > b. Stable across calls for a given pair.
type Comparator[K any] func(a, b K) int

// Codec encodes and decodes a fixed-width value of type T to and from a byte
// slice at least Size() bytes long. Each instantiated key or value type
// (Key4, Key8, RID, page.ID, ...) has its own Codec, so the page's per-slot
// width is fixed at the type's instantiation, not chosen at runtime.
type Codec[T any] interface {
	Size() int
	Encode(v T, dst []byte)
	Decode(src []byte) T
}

// Common header, shared by internal and leaf pages: page type, current
// size, max size. Leaf pages append an 8-byte next-page-id immediately
// after (see leaf_page.go), pushing their entry array's start offset out by 8.
const (
	offType    = 0
	offSize    = 1
	offMaxSize = 3
	headerSize = 5
)

// basePage is the generic in-frame view shared by InternalPage and LeafPage.
// It owns no memory: buf points directly into a buffer-pool frame's Data
// array, so every accessor reads or writes through to the resident page.
type basePage[K any, V any] struct {
	buf        *[page.Size]byte
	entriesOff int
	keyCodec   Codec[K]
	valCodec   Codec[V]
}

func (p *basePage[K, V]) entrySize() int {
	return p.keyCodec.Size() + p.valCodec.Size()
}

func (p *basePage[K, V]) entryOffset(i int) int {
	return p.entriesOff + i*p.entrySize()
}

func (p *basePage[K, V]) init(pageType PageType, maxSize int) {
	p.buf[offType] = byte(pageType)
	binary.LittleEndian.PutUint16(p.buf[offSize:], 0)
	binary.LittleEndian.PutUint16(p.buf[offMaxSize:], uint16(maxSize))
}

// PageType reports the stamp left by Init.
func (p *basePage[K, V]) PageType() PageType {
	return PageType(p.buf[offType])
}

// Size returns the number of occupied (key, value) slots.
func (p *basePage[K, V]) Size() int {
	return int(binary.LittleEndian.Uint16(p.buf[offSize:]))
}

func (p *basePage[K, V]) setSize(n int) {
	binary.LittleEndian.PutUint16(p.buf[offSize:], uint16(n))
}

// MaxSize returns the capacity stamped by Init.
func (p *basePage[K, V]) MaxSize() int {
	return int(binary.LittleEndian.Uint16(p.buf[offMaxSize:]))
}

// KeyAt returns the key at slot i. i must be in [0, Size()).
func (p *basePage[K, V]) KeyAt(i int) K {
	off := p.entryOffset(i)
	return p.keyCodec.Decode(p.buf[off : off+p.keyCodec.Size()])
}

// SetKeyAt overwrites the key at slot i without touching its value.
func (p *basePage[K, V]) SetKeyAt(i int, k K) {
	off := p.entryOffset(i)
	p.keyCodec.Encode(k, p.buf[off:off+p.keyCodec.Size()])
}

// ValueAt returns the value at slot i. i must be in [0, Size()).
func (p *basePage[K, V]) ValueAt(i int) V {
	off := p.entryOffset(i) + p.keyCodec.Size()
	return p.valCodec.Decode(p.buf[off : off+p.valCodec.Size()])
}

func (p *basePage[K, V]) setValueAt(i int, v V) {
	off := p.entryOffset(i) + p.keyCodec.Size()
	p.valCodec.Encode(v, p.buf[off:off+p.valCodec.Size()])
}

// Index returns the lowest index in [0, Size()) whose key is >= key
// (classical lower-bound), or Size() if every key is smaller.
func (p *basePage[K, V]) Index(key K, cmp Comparator[K]) int {
	lo, hi := 0, p.Size()
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(p.KeyAt(mid), key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// InsertAt shifts the suffix [i, Size()) right by one slot and places
// (key, value) at i. Preconditions: Size() < MaxSize() and i in [0, Size()].
// Violating either is a programmer error (spec §7) and panics.
func (p *basePage[K, V]) InsertAt(i int, key K, value V) {
	size := p.Size()
	if size >= p.MaxSize() {
		panic("bptree: InsertAt on a full page")
	}
	if i < 0 || i > size {
		panic("bptree: InsertAt index out of range")
	}
	for j := size; j > i; j-- {
		p.SetKeyAt(j, p.KeyAt(j-1))
		p.setValueAt(j, p.ValueAt(j-1))
	}
	p.SetKeyAt(i, key)
	p.setValueAt(i, value)
	p.setSize(size + 1)
}

// Insort inserts (key, value) at its sorted position per cmp.
func (p *basePage[K, V]) Insort(key K, value V, cmp Comparator[K]) {
	p.InsertAt(p.Index(key, cmp), key, value)
}

// split moves the entries in [splitPoint, Size()) out of p and into other,
// which must be freshly initialized and empty. Used by InternalPage.Split
// and LeafPage.Split with their respective splitPoint formulas (spec §4.4).
func (p *basePage[K, V]) split(other *basePage[K, V], splitPoint int) {
	if other.Size() != 0 {
		panic("bptree: Split target must be empty")
	}
	size := p.Size()
	for i := splitPoint; i < size; i++ {
		other.InsertAt(other.Size(), p.KeyAt(i), p.ValueAt(i))
	}
	p.setSize(splitPoint)
}
