package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmenon/kvcore/internal/page"
)

// buildInternal wires keys[1:] (slot 0's key is unused) against children,
// where len(children) == len(keys).
func buildInternal(t *testing.T, maxSize int, keys []uint64, children []page.ID) *InternalPage[Key8] {
	t.Helper()
	require.Equal(t, len(keys), len(children))

	var buf [page.Size]byte
	ip := NewInternalPage[Key8](&buf, KeyCodec8)
	ip.Init(maxSize)
	for i := range keys {
		ip.InsertAt(i, u64Key(keys[i]), children[i])
	}
	return ip
}

func TestInternalGetDescent(t *testing.T) {
	// slot 0 key unused (-infinity), slots 1,2 hold real separator keys 20,40.
	ip := buildInternal(t, 8, []uint64{0, 20, 40}, []page.ID{100, 200, 300})

	require.Equal(t, page.ID(100), ip.Get(u64Key(5), CompareKey8))
	require.Equal(t, page.ID(100), ip.Get(u64Key(19), CompareKey8))
	require.Equal(t, page.ID(200), ip.Get(u64Key(20), CompareKey8))
	require.Equal(t, page.ID(200), ip.Get(u64Key(39), CompareKey8))
	require.Equal(t, page.ID(300), ip.Get(u64Key(40), CompareKey8))
	require.Equal(t, page.ID(300), ip.Get(u64Key(1000), CompareKey8))
}

func TestInternalValueIndex(t *testing.T) {
	ip := buildInternal(t, 8, []uint64{0, 20, 40}, []page.ID{100, 200, 300})
	require.Equal(t, 1, ip.ValueIndex(200))
	require.Equal(t, 3, ip.ValueIndex(999))
}

func TestInternalSplitKeepsCeilOnLeft(t *testing.T) {
	// max_size=4: ceil((4+1)/2) = 3 entries stay on the left.
	ip := buildInternal(t, 4, []uint64{0, 10, 20, 30}, []page.ID{1, 2, 3, 4})

	var buf2 [page.Size]byte
	other := NewInternalPage[Key8](&buf2, KeyCodec8)
	other.Init(4)
	ip.Split(other)

	require.Equal(t, 3, ip.Size())
	require.Equal(t, 1, other.Size())
	require.Equal(t, u64Key(30), other.KeyAt(0))
	require.Equal(t, page.ID(4), other.ValueAt(0))
}
