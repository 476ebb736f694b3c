package scan

import (
	"context"
	"log"
	"sync"
)

// FindDuplicates resolves content digests for every inventory entry
// whose size bucket holds two or more paths, and groups byte-identical
// files by digest. Hashing runs on a bounded worker pool (HashWorkers
// goroutines); the inode cache guarantees each distinct on-disk object
// is read at most once even with hardlinked candidates spread across
// workers.
//
// Paths that fail to hash are omitted, and groups reduced below two
// members are discarded. Group order and member order follow the
// inventory's traversal order, so an unchanged tree always yields the
// same grouping.
//
// On cancellation the groups assembled from already-hashed candidates
// are returned along with ctx's error.
func (s *Scanner) FindDuplicates(ctx context.Context, inv *Inventory) ([]DuplicateGroup, error) {
	var candidates []FileRecord
	for _, rec := range inv.Records {
		if len(inv.buckets[rec.Size]) < 2 {
			continue
		}
		candidates = append(candidates, rec)
	}
	if len(candidates) == 0 {
		return nil, ctx.Err()
	}

	cache := newDigestCache()
	results := make([]digestResult, len(candidates))

	workers := s.cfg.HashWorkers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.resolveDigest(ctx, cache, candidates[i])
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	// Assemble groups sequentially in candidate order. Workers finished
	// in arbitrary order, but the grouping must not depend on it.
	byDigest := make(map[string]*DuplicateGroup)
	var order []string
	for i, rec := range candidates {
		r := results[i]
		if !r.ok {
			continue
		}
		g := byDigest[r.digest]
		if g == nil {
			g = &DuplicateGroup{Digest: r.digest, Size: rec.Size}
			byDigest[r.digest] = g
			order = append(order, r.digest)
		}
		g.Paths = append(g.Paths, rec.Path)
	}

	var groups []DuplicateGroup
	for _, digest := range order {
		if g := byDigest[digest]; len(g.Paths) >= 2 {
			groups = append(groups, *g)
		}
	}
	return groups, ctx.Err()
}

// resolveDigest returns the content digest for rec, going through the
// inode cache when the platform exposes (device, inode) identity.
func (s *Scanner) resolveDigest(ctx context.Context, cache *digestCache, rec FileRecord) digestResult {
	if !rec.keyOK {
		return s.computeDigest(rec.Path)
	}
	entry, owner := cache.claim(rec.key)
	if owner {
		res := s.computeDigest(rec.Path)
		entry.complete(res)
		return res
	}
	res, err := entry.wait(ctx)
	if err != nil {
		return digestResult{}
	}
	return res
}

func (s *Scanner) computeDigest(path string) digestResult {
	digest, err := s.hashFile(path)
	if err != nil {
		s.hashFailures.Add(1)
		log.Printf("warning: hash skipped for %s: %v", path, err)
		return digestResult{}
	}
	s.hashesComputed.Add(1)
	return digestResult{digest: digest, ok: true}
}
