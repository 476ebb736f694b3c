package scan

import (
	"context"
	"sync"
)

// digestResult is an inode cache entry value. ok is false when hashing
// failed; the failure is cached so a known-bad path is never retried
// within a run.
type digestResult struct {
	digest string
	ok     bool
}

// digestCache guarantees at most one digest computation per inodeKey,
// even under concurrent access. The first caller to claim a key owns the
// computation; everyone else blocks on the entry's done channel and
// reuses the result. N hardlinks to one inode are read from storage
// exactly once per run.
type digestCache struct {
	mu      sync.Mutex
	entries map[inodeKey]*digestEntry
}

type digestEntry struct {
	done chan struct{}
	res  digestResult
}

func newDigestCache() *digestCache {
	return &digestCache{entries: make(map[inodeKey]*digestEntry)}
}

// claim returns the entry for key and whether the caller is responsible
// for computing it. An owner must call complete exactly once.
func (c *digestCache) claim(key inodeKey) (*digestEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.entries[key]; exists {
		return e, false
	}
	e := &digestEntry{done: make(chan struct{})}
	c.entries[key] = e
	return e, true
}

func (e *digestEntry) complete(res digestResult) {
	e.res = res
	close(e.done)
}

// wait blocks until the owning computation finishes or ctx is cancelled.
func (e *digestEntry) wait(ctx context.Context) (digestResult, error) {
	select {
	case <-e.done:
		return e.res, nil
	case <-ctx.Done():
		return digestResult{}, ctx.Err()
	}
}
