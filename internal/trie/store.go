package trie

import "sync"

// TrieStore holds the current published Trie behind two latches: a fine
// root-latch guarding only the root handle swap, and a coarse write-latch
// serializing mutators against each other (spec §4.6). Lock order is
// strict: write-latch outermost, root-latch innermost; read paths take
// only the root-latch, briefly.
type TrieStore struct {
	rootLatch  sync.Mutex
	writeLatch sync.Mutex
	root       Trie
}

// NewStore returns a store holding an empty trie.
func NewStore() *TrieStore {
	return &TrieStore{}
}

// ValueGuard holds a borrowed value alongside the trie snapshot it came
// from, keeping that snapshot's nodes (and so the value) alive for the
// guard's lifetime even as later writers publish new roots — the Go
// analogue of the spec's ValueGuard, achieved for free by holding a Trie
// (itself just a shared *node) rather than by any explicit pinning.
type ValueGuard[T any] struct {
	snapshot Trie
	value    T
}

// Value returns the borrowed value.
func (g ValueGuard[T]) Value() T { return g.value }

// StoreGet captures the published root under the root-latch, releases it,
// and performs the trie walk lock-free against that snapshot. Readers never
// block other readers and are blocked by a writer only for the instant it
// takes to swap the root handle.
func StoreGet[T any](s *TrieStore, key string) (ValueGuard[T], bool) {
	s.rootLatch.Lock()
	root := s.root
	s.rootLatch.Unlock()

	v, ok := Get[T](root, key)
	if !ok {
		return ValueGuard[T]{}, false
	}
	return ValueGuard[T]{snapshot: root, value: v}, true
}

// Put serializes on the write-latch, computes the new root via copy-on-write
// against a captured snapshot of the old one, and publishes it under the
// root-latch.
func (s *TrieStore) Put(key string, value any) {
	s.writeLatch.Lock()
	defer s.writeLatch.Unlock()

	s.rootLatch.Lock()
	root := s.root
	s.rootLatch.Unlock()

	root = root.Put(key, value)

	s.rootLatch.Lock()
	s.root = root
	s.rootLatch.Unlock()
}

// Remove serializes on the write-latch and publishes the trie resulting
// from removing key, following the same capture/compute/publish shape as
// Put.
func (s *TrieStore) Remove(key string) {
	s.writeLatch.Lock()
	defer s.writeLatch.Unlock()

	s.rootLatch.Lock()
	root := s.root
	s.rootLatch.Unlock()

	root = root.Remove(key)

	s.rootLatch.Lock()
	s.root = root
	s.rootLatch.Unlock()
}
