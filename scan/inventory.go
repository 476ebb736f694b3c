package scan

import (
	"time"
)

type (
	// FileRecord describes one regular file discovered during traversal.
	// Records are immutable once appended to an Inventory.
	FileRecord struct {
		Path     string    `json:"path"`     // path as visited, rooted at the scan target
		Size     int64     `json:"size"`     // size of the file in bytes
		Modified time.Time `json:"modified"` // modification time, always UTC

		key   inodeKey // filesystem identity captured at stat time
		keyOK bool     // false when the platform exposes no inode identity
	}

	// Inventory is the ordered result of one traversal: every qualifying
	// FileRecord in discovery order, plus the size-keyed bucket index
	// that feeds duplicate detection. It is owned by the Scanner while a
	// scan runs and read-only afterwards.
	Inventory struct {
		Records []FileRecord

		buckets map[int64][]string
	}

	// DuplicateGroup is a set of paths whose content shares one digest.
	// Every group returned by FindDuplicates has at least two members,
	// all of identical size.
	DuplicateGroup struct {
		Digest string
		Size   int64
		Paths  []string
	}
)

func newInventory() *Inventory {
	return &Inventory{buckets: make(map[int64][]string)}
}

func (inv *Inventory) add(rec FileRecord) {
	inv.Records = append(inv.Records, rec)
	inv.buckets[rec.Size] = append(inv.buckets[rec.Size], rec.Path)
}

// Len returns the number of inventoried files.
func (inv *Inventory) Len() int {
	return len(inv.Records)
}

// SizeBuckets returns the size index: file size to the paths sharing that
// size, in discovery order. The returned map is shared with the
// Inventory and must be treated as read-only.
func (inv *Inventory) SizeBuckets() map[int64][]string {
	return inv.buckets
}
