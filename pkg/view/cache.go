package view

import (
	"sync"

	"github.com/trafficlab/route-planner/pkg/model"
)

// Cache memoizes the last built View, keyed by the store's version
// counter. There is exactly one network per process, so a single slot is
// enough; no eviction.
//
// The contract that keeps visualization coherent with traffic edits:
// callers must pass the store's *current* version (never a remembered
// one), and the cache compares it by value against the tag of the stored
// view. Equal version → the identical view is returned with no rebuild;
// any other version → the view is rebuilt from g and the slot replaced.
type Cache struct {
	mu      sync.Mutex
	current *View
}

// Get returns the view for the given graph snapshot and version,
// rebuilding only when the version differs from the cached tag.
func (c *Cache) Get(g model.Graph, version uint64) *View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.Version == version {
		return c.current
	}
	c.current = Build(g, version)
	return c.current
}
