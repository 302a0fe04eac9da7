package replacer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmenon/kvcore/internal/page"
)

func TestEvictNilWhenNothingTracked(t *testing.T) {
	r := New(4, 2)
	_, ok := r.Evict()
	require.False(t, ok)
}

func TestHistoryPromotionToCache(t *testing.T) {
	// Scenario 3 from the spec: pool size 4, K=2, access sequence 1,2,3,1,2.
	// After marking all evictable, Evict must return 3 (the only frame still
	// in history).
	r := New(4, 2)
	for _, f := range []page.FrameID{1, 2, 3, 1, 2} {
		r.RecordAccess(f)
	}
	for _, f := range []page.FrameID{1, 2, 3} {
		r.SetEvictable(f, true)
	}
	require.Equal(t, 3, r.Size())

	victim, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, page.FrameID(3), victim)
}

func TestEvictPrefersHistoryOverCache(t *testing.T) {
	r := New(4, 2)
	// Promote frame 1 into cache (2 accesses), leave frame 2 in history.
	r.RecordAccess(1)
	r.RecordAccess(1)
	r.RecordAccess(2)
	r.SetEvictable(1, true)
	r.SetEvictable(2, true)

	victim, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, page.FrameID(2), victim, "history victims must be chosen before cache victims")
}

func TestCacheQueueOrdersByKDistance(t *testing.T) {
	r := New(4, 2)
	for _, f := range []page.FrameID{1, 2} {
		r.RecordAccess(f)
		r.RecordAccess(f)
	}
	r.SetEvictable(1, true)
	r.SetEvictable(2, true)

	// touch 1 again, moving it to the back of the cache queue
	r.RecordAccess(1)

	victim, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, page.FrameID(2), victim)
}

func TestSetEvictableOnlyAdjustsOnTransition(t *testing.T) {
	r := New(2, 2)
	r.RecordAccess(1)
	require.Equal(t, 0, r.Size())

	r.SetEvictable(1, true)
	require.Equal(t, 1, r.Size())

	r.SetEvictable(1, true) // no-op, already true
	require.Equal(t, 1, r.Size())

	r.SetEvictable(1, false)
	require.Equal(t, 0, r.Size())
}

func TestRemoveUntrackedIsNoOp(t *testing.T) {
	r := New(2, 2)
	require.NotPanics(t, func() { r.Remove(99) })
}

func TestRemoveNonEvictablePanics(t *testing.T) {
	r := New(2, 2)
	r.RecordAccess(1)
	require.Panics(t, func() { r.Remove(1) })
}

func TestEvictReducesSize(t *testing.T) {
	r := New(3, 2)
	r.RecordAccess(1)
	r.RecordAccess(2)
	r.SetEvictable(1, true)
	r.SetEvictable(2, true)
	require.Equal(t, 2, r.Size())

	_, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, 1, r.Size())
}
