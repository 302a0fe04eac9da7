package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmenon/kvcore/internal/page"
)

func u64Key(n uint64) Key8 {
	var k Key8
	for i := 0; i < 8; i++ {
		k[7-i] = byte(n >> (8 * i))
	}
	return k
}

// TestLeafSplit is spec §8 scenario 6: max_size=4, insert 10/20/30/40, split
// leaves 2 on each side.
func TestLeafSplit(t *testing.T) {
	var buf1, buf2 [page.Size]byte
	leaf := NewLeafPage[Key8](&buf1, KeyCodec8)
	leaf.Init(4)

	for _, k := range []uint64{10, 20, 30, 40} {
		leaf.Insort(u64Key(k), RID{PageID: page.ID(k), Slot: 0}, CompareKey8)
	}
	require.Equal(t, 4, leaf.Size())

	other := NewLeafPage[Key8](&buf2, KeyCodec8)
	other.Init(4)
	leaf.Split(other)

	require.Equal(t, 2, leaf.Size())
	require.Equal(t, 2, other.Size())
	require.Equal(t, u64Key(10), leaf.KeyAt(0))
	require.Equal(t, u64Key(20), leaf.KeyAt(1))
	require.Equal(t, u64Key(30), other.KeyAt(0))
	require.Equal(t, u64Key(40), other.KeyAt(1))
}

func TestLeafGetFoundAndNotFound(t *testing.T) {
	var buf [page.Size]byte
	leaf := NewLeafPage[Key8](&buf, KeyCodec8)
	leaf.Init(8)
	leaf.Insort(u64Key(5), RID{PageID: 5}, CompareKey8)
	leaf.Insort(u64Key(1), RID{PageID: 1}, CompareKey8)
	leaf.Insort(u64Key(9), RID{PageID: 9}, CompareKey8)

	rid, ok := leaf.Get(u64Key(5), CompareKey8)
	require.True(t, ok)
	require.Equal(t, page.ID(5), rid.PageID)

	_, ok = leaf.Get(u64Key(7), CompareKey8)
	require.False(t, ok)
}

func TestLeafNextPageIDDefaultsInvalid(t *testing.T) {
	var buf [page.Size]byte
	leaf := NewLeafPage[Key8](&buf, KeyCodec8)
	leaf.Init(4)
	require.Equal(t, page.InvalidID, leaf.GetNextPageId())

	leaf.SetNextPageId(page.ID(42))
	require.Equal(t, page.ID(42), leaf.GetNextPageId())
}

func TestInsertAtOnFullPagePanics(t *testing.T) {
	var buf [page.Size]byte
	leaf := NewLeafPage[Key8](&buf, KeyCodec8)
	leaf.Init(1)
	leaf.Insort(u64Key(1), RID{PageID: 1}, CompareKey8)
	require.Panics(t, func() {
		leaf.Insort(u64Key(2), RID{PageID: 2}, CompareKey8)
	})
}
