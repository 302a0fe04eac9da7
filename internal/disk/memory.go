package disk

import (
	"sync"

	"github.com/arjunmenon/kvcore/internal/page"
)

// Memory is an in-memory stand-in for Manager, grounded on the teacher's
// InMemoryPager: same read/write semantics, no file handle and no Close.
// Used by buffer pool tests that want a disk collaborator without touching
// the filesystem.
type Memory struct {
	mu     sync.RWMutex
	pages  map[page.ID]*[page.Size]byte
	writes map[page.ID]int
}

// NewMemory constructs an empty in-memory disk.
func NewMemory() *Memory {
	return &Memory{
		pages:  make(map[page.ID]*[page.Size]byte),
		writes: make(map[page.ID]int),
	}
}

func (m *Memory) ReadPage(id page.ID, dest *[page.Size]byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.pages[id]; ok {
		*dest = *data
		return nil
	}
	*dest = [page.Size]byte{}
	return nil
}

func (m *Memory) WritePage(id page.ID, src *[page.Size]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *src
	m.pages[id] = &cp
	m.writes[id]++
	return nil
}

// WriteCount reports how many times id has been written, for tests that
// assert exactly one WritePage call reached the disk.
func (m *Memory) WriteCount(id page.ID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[id]
}
