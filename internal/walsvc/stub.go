// Package walsvc provides a minimal write-ahead-log stand-in: an
// append-only, monotonically increasing log sequence number with a
// "flushed so far" watermark. It exists so the buffer pool's optional
// flush-gating path (spec §6, "Log Manager (consumed by the pool,
// optional)") has a real collaborator to exercise, grounded on the
// teacher's WALFlushedLSNGetter interface in storage_engine/bufferpool/
// structs.go. It does not implement durability, recovery, or replication —
// those remain explicit Non-goals.
package walsvc

import "sync/atomic"

// Stub is a process-local, non-durable WAL: Append hands out the next LSN,
// MarkFlushed advances the watermark a caller (standing in for a real log
// manager's disk-sync completion) reports as durable.
type Stub struct {
	nextLSN uint64
	flushed uint64
}

// NewStub returns a WAL stub with LSN and flushed watermark both at zero.
func NewStub() *Stub {
	return &Stub{}
}

// Append reserves and returns the next LSN. It does not mark it flushed.
func (s *Stub) Append() uint64 {
	return atomic.AddUint64(&s.nextLSN, 1)
}

// MarkFlushed advances the flushed watermark to lsn, if lsn is larger than
// the current watermark. Matches an append-only log: the watermark never
// moves backward.
func (s *Stub) MarkFlushed(lsn uint64) {
	for {
		cur := atomic.LoadUint64(&s.flushed)
		if lsn <= cur {
			return
		}
		if atomic.CompareAndSwapUint64(&s.flushed, cur, lsn) {
			return
		}
	}
}

// GetFlushedLSN satisfies the buffer pool's buffer.WALGetter interface.
func (s *Stub) GetFlushedLSN() uint64 {
	return atomic.LoadUint64(&s.flushed)
}
