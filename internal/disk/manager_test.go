package disk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmenon/kvcore/internal/page"
)

func TestManagerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(filepath.Join(dir, "data.db"))
	require.NoError(t, err)
	defer m.Close()

	var src [page.Size]byte
	copy(src[:], "hello-page-zero")

	require.NoError(t, m.WritePage(0, &src))

	var dest [page.Size]byte
	require.NoError(t, m.ReadPage(0, &dest))
	require.Equal(t, src, dest)
}

func TestManagerReadUnwrittenPageIsZeroed(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(filepath.Join(dir, "data.db"))
	require.NoError(t, err)
	defer m.Close()

	var dest [page.Size]byte
	for i := range dest {
		dest[i] = 0xFF
	}
	require.NoError(t, m.ReadPage(5, &dest))

	var zero [page.Size]byte
	require.Equal(t, zero, dest)
}

func TestMemoryWriteCount(t *testing.T) {
	m := NewMemory()
	var buf [page.Size]byte
	require.NoError(t, m.WritePage(1, &buf))
	require.NoError(t, m.WritePage(1, &buf))
	require.Equal(t, 2, m.WriteCount(1))
	require.Equal(t, 0, m.WriteCount(2))
}
