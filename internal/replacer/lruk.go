// Package replacer implements the two-queue LRU-K page replacement policy:
// frames with fewer than K recorded accesses live in a FIFO "history" queue,
// frames with K or more live in an LRU "cache" queue ordered by backward
// K-distance, and Evict always prefers a victim from history over cache.
package replacer

import (
	"container/list"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/arjunmenon/kvcore/internal/page"
)

// node is the per-tracked-frame bookkeeping record. accessCount counts how
// many times RecordAccess has been called for this frame; once it reaches k
// the node is promoted out of history and into cache.
type node struct {
	frameID     page.FrameID
	accessCount int
	isEvictable bool
	inCache     bool
	historyElem *list.Element // valid while !inCache
}

// LRUK tracks up to numFrames frames and chooses eviction victims using the
// two-queue history/cache classification described in the package doc.
//
// The cache sub-queue is backed by hashicorp's simplelru.LRU, configured
// with no eviction callback of its own: membership changes (insertion,
// touch-to-back, removal) are driven entirely by this type's RecordAccess /
// SetEvictable / Evict / Remove, never by simplelru's internal capacity
// eviction, since it is sized to numFrames and this type never inserts more
// than numFrames distinct keys into it. The history sub-queue has no
// off-the-shelf analogue (it is FIFO with O(1) arbitrary removal, not an
// LRU), so it is a plain container/list plus a frame-id index, the same
// doubly-linked-list idiom simplelru itself uses internally.
type LRUK struct {
	mu sync.Mutex

	k        int
	currSize int

	history *list.List // list of page.FrameID, front = oldest
	nodes   map[page.FrameID]*node
	cache   *lru.LRU[page.FrameID, struct{}]
}

// New constructs a replacer tracking up to numFrames frames with history
// parameter k. Panics if either is non-positive — a programmer error, not a
// recoverable condition.
func New(numFrames, k int) *LRUK {
	if numFrames <= 0 {
		panic("replacer: numFrames must be positive")
	}
	if k <= 0 {
		panic("replacer: k must be positive")
	}
	cache, err := lru.NewLRU[page.FrameID, struct{}](numFrames, nil)
	if err != nil {
		// simplelru.NewLRU only errors on size <= 0, excluded above.
		panic(fmt.Sprintf("replacer: unexpected simplelru error: %v", err))
	}
	return &LRUK{
		k:       k,
		history: list.New(),
		nodes:   make(map[page.FrameID]*node, numFrames),
		cache:   cache,
	}
}

// RecordAccess notes that frameID was just accessed. A frame seen for the
// first time enters history at access-count 1; once its access-count
// reaches k it is promoted to the back of cache; subsequent accesses to an
// already-cache frame move it to the back of cache (most-recently-used end).
func (r *LRUK) RecordAccess(frameID page.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, tracked := r.nodes[frameID]
	if !tracked {
		n = &node{frameID: frameID, accessCount: 1}
		n.historyElem = r.history.PushBack(frameID)
		r.nodes[frameID] = n
		return
	}

	if n.inCache {
		r.cache.Add(frameID, struct{}{}) // re-adding moves it to the MRU end
		return
	}

	n.accessCount++
	if n.accessCount >= r.k {
		r.history.Remove(n.historyElem)
		n.historyElem = nil
		n.inCache = true
		r.cache.Add(frameID, struct{}{})
	}
}

// SetEvictable toggles whether frameID may be chosen by Evict. curr_size is
// adjusted only on true transitions, matching the spec's accounting rule.
func (r *LRUK) SetEvictable(frameID page.FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, tracked := r.nodes[frameID]
	if !tracked {
		return
	}
	if n.isEvictable == evictable {
		return
	}
	n.isEvictable = evictable
	if evictable {
		r.currSize++
	} else {
		r.currSize--
	}
}

// Evict picks a victim frame: the oldest evictable entry in history if one
// exists, otherwise the front (least-recently-used) evictable entry in
// cache. Returns ok=false when no frame is currently evictable — a normal
// result, not an error.
func (r *LRUK) Evict() (page.FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currSize == 0 {
		return 0, false
	}

	for e := r.history.Front(); e != nil; e = e.Next() {
		fid := e.Value.(page.FrameID)
		if r.nodes[fid].isEvictable {
			r.removeLocked(fid)
			return fid, true
		}
	}

	for _, fid := range r.cache.Keys() {
		if n := r.nodes[fid]; n.isEvictable {
			r.removeLocked(fid)
			return fid, true
		}
	}

	// currSize > 0 implies some tracked frame is evictable; reaching here
	// means our bookkeeping is inconsistent.
	panic("replacer: curr_size > 0 but no evictable frame found")
}

// Remove stops tracking frameID. Precondition: the frame, if tracked, must
// be evictable — removing a pinned frame's node is a programmer error.
// Removing an untracked frame is a no-op.
func (r *LRUK) Remove(frameID page.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, tracked := r.nodes[frameID]
	if !tracked {
		return
	}
	if !n.isEvictable {
		panic(fmt.Sprintf("replacer: Remove called on non-evictable frame %d", frameID))
	}
	r.removeLocked(frameID)
}

// removeLocked deletes frameID's node from whichever queue holds it and
// decrements curr_size. Caller must hold r.mu.
func (r *LRUK) removeLocked(frameID page.FrameID) {
	n := r.nodes[frameID]
	if n.inCache {
		r.cache.Remove(frameID)
	} else {
		r.history.Remove(n.historyElem)
	}
	delete(r.nodes, frameID)
	r.currSize--
}

// Size returns the number of frames currently evictable.
func (r *LRUK) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currSize
}
