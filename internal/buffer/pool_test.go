package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmenon/kvcore/internal/disk"
	"github.com/arjunmenon/kvcore/internal/page"
	"github.com/arjunmenon/kvcore/internal/walsvc"
)

// TestPoolFillAndEviction is spec §8 scenario 1: pool size 3, K=2.
func TestPoolFillAndEviction(t *testing.T) {
	d := disk.NewMemory()
	p := New(3, 2, d)

	var ids [3]page.ID
	for i := range ids {
		id, frame, err := p.NewPage()
		require.NoError(t, err)
		ids[i] = id
		require.NotNil(t, frame)
	}
	require.Equal(t, 0, p.replacer.Size())

	for _, id := range ids {
		require.True(t, p.UnpinPage(id, false))
	}
	require.Equal(t, 3, p.replacer.Size())

	id3, frame, err := p.NewPage()
	require.NoError(t, err)
	require.NotNil(t, frame)
	require.Equal(t, 3, p.Size()) // one of ids{0,1,2} was evicted, id3 resident

	// Count the evicted ids before fetching any back: each fetch of an
	// evicted id itself evicts another unpinned page.
	var evicted []page.ID
	for _, id := range ids {
		if _, ok := p.pageTable[id]; !ok {
			evicted = append(evicted, id)
		}
	}
	require.Equal(t, 1, len(evicted))
	for _, id := range evicted {
		// fetching the evicted id must succeed by reading from disk
		fetched, err := p.FetchPage(id)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.True(t, p.UnpinPage(id, false))
	}
	require.True(t, p.UnpinPage(id3, false))
}

// TestDirtyWriteback is spec §8 scenario 2.
func TestDirtyWriteback(t *testing.T) {
	d := disk.NewMemory()
	p := New(2, 2, d)

	id, _, err := p.NewPage()
	require.NoError(t, err)
	require.True(t, p.UnpinPage(id, true))
	require.True(t, p.FlushPage(id))
	require.Equal(t, 1, d.WriteCount(id))
}

func TestFetchOnHitIncrementsPinAndSetsNonEvictable(t *testing.T) {
	d := disk.NewMemory()
	p := New(2, 2, d)

	id, _, err := p.NewPage()
	require.NoError(t, err)
	require.True(t, p.UnpinPage(id, false)) // pin 1 -> 0, now evictable

	frame, err := p.FetchPage(id)
	require.NoError(t, err)
	require.EqualValues(t, 1, frame.PinCount)
	require.Equal(t, 0, p.replacer.Size())

	frame2, err := p.FetchPage(id)
	require.NoError(t, err)
	require.EqualValues(t, 2, frame2.PinCount)
}

func TestUnpinNonResidentReturnsFalse(t *testing.T) {
	p := New(2, 2, disk.NewMemory())
	require.False(t, p.UnpinPage(42, false))
}

func TestUnpinAlreadyZeroReturnsFalse(t *testing.T) {
	d := disk.NewMemory()
	p := New(2, 2, d)
	id, _, err := p.NewPage()
	require.NoError(t, err)
	require.True(t, p.UnpinPage(id, false))
	require.False(t, p.UnpinPage(id, false))
}

func TestDeletePageIdempotentOnNonResident(t *testing.T) {
	p := New(2, 2, disk.NewMemory())
	require.True(t, p.DeletePage(999))
}

func TestDeletePinnedFails(t *testing.T) {
	p := New(2, 2, disk.NewMemory())
	id, _, err := p.NewPage()
	require.NoError(t, err)
	require.False(t, p.DeletePage(id))
}

func TestNoCleanFrameWhenAllPinned(t *testing.T) {
	d := disk.NewMemory()
	p := New(2, 2, d)
	_, _, err := p.NewPage()
	require.NoError(t, err)
	_, _, err = p.NewPage()
	require.NoError(t, err)

	_, _, err = p.NewPage()
	require.ErrorIs(t, err, ErrNoCleanFrame)
}

func TestDirtyBitIsOrCombinedNeverCleared(t *testing.T) {
	d := disk.NewMemory()
	p := New(2, 2, d)
	id, frame, err := p.NewPage()
	require.NoError(t, err)
	frame.IsDirty = false // simulate a clean page after allocation bookkeeping

	require.True(t, p.UnpinPage(id, true))
	fetched, err := p.FetchPage(id)
	require.NoError(t, err)
	require.True(t, fetched.IsDirty)

	require.True(t, p.UnpinPage(id, false)) // must not clear dirty
	require.True(t, fetched.IsDirty)
}

func TestFlushGatedByWAL(t *testing.T) {
	d := disk.NewMemory()
	w := walsvc.NewStub()
	p := New(2, 2, d, WithWAL(w))

	id, _, err := p.NewPage()
	require.NoError(t, err)
	lsn := w.Append()
	p.SetPageLSN(id, lsn)
	require.True(t, p.UnpinPage(id, true))

	require.True(t, p.FlushPage(id))
	require.Equal(t, 0, d.WriteCount(id), "flush must be blocked until WAL covers the page's LSN")

	w.MarkFlushed(lsn)
	require.True(t, p.FlushPage(id))
	require.Equal(t, 1, d.WriteCount(id))
}
