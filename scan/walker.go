package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Scanner is a single-run inventory and duplicate detection engine. All
// accumulating state (inventory, size buckets, inode cache, counters) is
// owned by the instance, so concurrent or repeated runs never share
// state. Construct one Scanner per run with New.
type Scanner struct {
	cfg    Config
	filter *Filter

	filesSeen      atomic.Int64
	bytesSeen      atomic.Int64
	entriesSkipped atomic.Int64
	statFailures   atomic.Int64
	hashesComputed atomic.Int64
	hashFailures   atomic.Int64
}

// Stats are the observable counters of one run.
type Stats struct {
	FilesSeen      int64 // regular files inventoried
	BytesSeen      int64 // total size of inventoried files
	EntriesSkipped int64 // entries excluded by the filter
	StatFailures   int64 // entries whose metadata could not be read
	HashesComputed int64 // successful content digest computations
	HashFailures   int64 // files unreadable at hash time
}

// New validates cfg and returns a Scanner for one run.
func New(cfg Config) (*Scanner, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	f, err := NewFilter(cfg)
	if err != nil {
		return nil, err
	}
	return &Scanner{cfg: cfg, filter: f}, nil
}

// Stats returns a snapshot of the run counters.
func (s *Scanner) Stats() Stats {
	return Stats{
		FilesSeen:      s.filesSeen.Load(),
		BytesSeen:      s.bytesSeen.Load(),
		EntriesSkipped: s.entriesSkipped.Load(),
		StatFailures:   s.statFailures.Load(),
		HashesComputed: s.hashesComputed.Load(),
		HashFailures:   s.hashFailures.Load(),
	}
}

// Scan walks the tree rooted at root depth-first and returns the file
// inventory together with its size bucket index. Excluded subtrees are
// pruned before descent; per-entry metadata failures are logged and
// skipped without aborting the traversal.
//
// A missing or non-directory root is fatal and returns before any work.
// If ctx is cancelled mid-walk, Scan returns the partial inventory
// accumulated so far along with ctx's error.
func (s *Scanner) Scan(ctx context.Context, root string) (*Inventory, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: %w", root, ErrNotDirectory)
	}

	inv := newInventory()
	var visited map[inodeKey]struct{}
	if s.cfg.FollowSymlinks {
		// Guards against symlink cycles when links are followed.
		visited = make(map[inodeKey]struct{})
		if key, ok := inodeKeyFor(info); ok {
			visited[key] = struct{}{}
		}
	}
	if err := s.walkDir(ctx, root, inv, visited); err != nil {
		return inv, err
	}
	return inv, nil
}

func (s *Scanner) walkDir(ctx context.Context, dir string, inv *Inventory, visited map[inodeKey]struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.statFailures.Add(1)
		log.Printf("warning: listing %s: %v", dir, err)
		return nil
	}

	// First pass: inventory files and compute the filtered list of
	// subdirectories. Recursion happens only after the pruned child set
	// is fully decided. os.ReadDir returns entries sorted by name, so
	// discovery order is deterministic for a fixed tree.
	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		d := s.filter.Decide(path)
		if d.Skip {
			s.entriesSkipped.Add(1)
			if d.Err != nil {
				log.Printf("warning: skipping %s (%s): %v", path, d.Reason, d.Err)
			}
			continue
		}

		info, err := s.statEntry(path, entry)
		if err != nil {
			s.statFailures.Add(1)
			log.Printf("warning: skipping %s: %v", path, err)
			continue
		}

		if info.IsDir() {
			if visited != nil {
				if key, ok := inodeKeyFor(info); ok {
					if _, seen := visited[key]; seen {
						continue
					}
					visited[key] = struct{}{}
				}
			}
			subdirs = append(subdirs, path)
			continue
		}
		if !info.Mode().IsRegular() {
			// Devices, sockets, FIFOs, and unfollowed symlinks never
			// enter the inventory.
			continue
		}

		key, keyOK := inodeKeyFor(info)
		inv.add(FileRecord{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
			key:      key,
			keyOK:    keyOK,
		})
		s.filesSeen.Add(1)
		s.bytesSeen.Add(info.Size())
	}

	for _, sub := range subdirs {
		if err := s.walkDir(ctx, sub, inv, visited); err != nil {
			return err
		}
	}
	return nil
}

// statEntry obtains entry metadata, following the symlink policy: with
// FollowSymlinks the link target is inspected, otherwise the entry
// itself (lstat semantics via the directory listing).
func (s *Scanner) statEntry(path string, entry os.DirEntry) (os.FileInfo, error) {
	if s.cfg.FollowSymlinks {
		return os.Stat(path)
	}
	return entry.Info()
}
