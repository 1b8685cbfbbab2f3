package fs

import (
	"slices"
	"sync"
	"time"

	"github.com/aretw0/notebook/pkg/core"
)

// cache holds the last parsed collection together with the file stamp it was
// parsed from. A stamp mismatch means the file changed on disk.
type cache struct {
	mu      sync.RWMutex
	valid   bool
	modTime time.Time
	size    int64
	notes   []core.Note
	hits    int
	misses  int
}

func newCache() *cache {
	return &cache{}
}

// Get returns a copy of the cached collection if it matches the given stamp.
func (c *cache) Get(modTime time.Time, size int64) ([]core.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || !c.modTime.Equal(modTime) || c.size != size {
		c.misses++
		return nil, false
	}
	c.hits++
	return cloneNotes(c.notes), true
}

// Set stores a copy of notes under the given stamp.
func (c *cache) Set(modTime time.Time, size int64, notes []core.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = true
	c.modTime = modTime
	c.size = size
	c.notes = cloneNotes(notes)
}

// Invalidate drops the cached collection.
func (c *cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
	c.notes = nil
}

// Len returns the number of cached notes, or -1 when nothing is cached.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return -1
	}
	return len(c.notes)
}

// Stats returns hit and miss counters.
func (c *cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func cloneNotes(notes []core.Note) []core.Note {
	out := slices.Clone(notes)
	if out == nil {
		out = []core.Note{}
	}
	return out
}
