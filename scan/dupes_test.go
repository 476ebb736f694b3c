package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func findDuplicates(t *testing.T, s *Scanner, inv *Inventory) []DuplicateGroup {
	t.Helper()
	groups, err := s.FindDuplicates(context.Background(), inv)
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	return groups
}

func TestFindDuplicates_GroupsIdenticalContent(t *testing.T) {
	// Scenario: a and b share 100 identical bytes, c has the same size
	// but different content.
	root := buildTree(t, map[string]string{
		"a.dat": string(make([]byte, 100)),
		"c.dat": string(make([]byte, 99)) + "Y",
	})
	content := make([]byte, 100)
	os.WriteFile(filepath.Join(root, "b.dat"), content, 0644)
	os.WriteFile(filepath.Join(root, "a.dat"), content, 0644)

	s, inv := scanTree(t, Config{}, root)
	if inv.Len() != 3 {
		t.Fatalf("Scan() inventoried %d files, want 3", inv.Len())
	}

	groups := findDuplicates(t, s, inv)
	if len(groups) != 1 {
		t.Fatalf("FindDuplicates() = %d groups, want 1: %v", len(groups), groups)
	}

	want := []string{filepath.Join(root, "a.dat"), filepath.Join(root, "b.dat")}
	if !reflect.DeepEqual(groups[0].Paths, want) {
		t.Errorf("group paths = %v, want %v", groups[0].Paths, want)
	}
	if groups[0].Size != 100 {
		t.Errorf("group size = %d, want 100", groups[0].Size)
	}
	if len(groups[0].Digest) != 64 {
		t.Errorf("group digest %q is not a sha256 hex string", groups[0].Digest)
	}
}

func TestFindDuplicates_UniqueSizesNeverHashed(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.dat": "1",
		"b.dat": "22",
		"c.dat": "333",
	})

	s, inv := scanTree(t, Config{}, root)
	groups := findDuplicates(t, s, inv)
	if len(groups) != 0 {
		t.Errorf("FindDuplicates() = %v, want none", groups)
	}
	if got := s.Stats().HashesComputed; got != 0 {
		t.Errorf("HashesComputed = %d, want 0: unique sizes cannot collide", got)
	}
}

func TestFindDuplicates_HardlinksHashedOnce(t *testing.T) {
	root := buildTree(t, map[string]string{"original.dat": "hardlinked content"})
	link := filepath.Join(root, "alias.dat")
	if err := os.Link(filepath.Join(root, "original.dat"), link); err != nil {
		t.Skipf("hardlinks not supported: %v", err)
	}

	s, inv := scanTree(t, Config{}, root)
	if inv.Len() != 2 {
		t.Fatalf("Scan() inventoried %d files, want both hardlink paths", inv.Len())
	}

	groups := findDuplicates(t, s, inv)
	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Fatalf("FindDuplicates() = %v, want one group with both paths", groups)
	}
	if got := s.Stats().HashesComputed; got != 1 {
		t.Errorf("HashesComputed = %d, want 1: one inode is read once", got)
	}
}

func TestFindDuplicates_HardlinksPlusDistinctFile(t *testing.T) {
	root := buildTree(t, map[string]string{
		"original.dat": "AAAAAAAA",
		"other.dat":    "BBBBBBBB", // same size, different content
	})
	if err := os.Link(filepath.Join(root, "original.dat"), filepath.Join(root, "alias.dat")); err != nil {
		t.Skipf("hardlinks not supported: %v", err)
	}

	s, inv := scanTree(t, Config{}, root)
	groups := findDuplicates(t, s, inv)

	if len(groups) != 1 || len(groups[0].Paths) != 2 {
		t.Fatalf("FindDuplicates() = %v, want one group of the two hardlink paths", groups)
	}
	// Two distinct inodes: the hardlink pair (once) and other.dat.
	if got := s.Stats().HashesComputed; got != 2 {
		t.Errorf("HashesComputed = %d, want 2", got)
	}
}

func TestFindDuplicates_HashFailureShrinksGroup(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.dat": "identical",
		"b.dat": "identical",
	})

	s, inv := scanTree(t, Config{}, root)

	// Simulate the file vanishing between listing and hashing.
	os.Remove(filepath.Join(root, "b.dat"))

	groups := findDuplicates(t, s, inv)
	if len(groups) != 0 {
		t.Errorf("FindDuplicates() = %v, want none: a lone survivor is not a duplicate", groups)
	}
	if got := s.Stats().HashFailures; got != 1 {
		t.Errorf("HashFailures = %d, want 1", got)
	}

	// The inventory is unaffected: it reflects stat time, not hash time.
	if inv.Len() != 2 {
		t.Errorf("inventory shrank to %d records after hash failure", inv.Len())
	}
}

func TestFindDuplicates_ZeroByteFilesShareOneGroup(t *testing.T) {
	// All zero-byte files collide on size and carry the digest of empty
	// input, so they always land together in a single group. Intended
	// behavior, asserted here so a change shows up loudly.
	root := buildTree(t, map[string]string{
		"one.empty":       "",
		"two.empty":       "",
		"sub/three.empty": "",
	})

	s, inv := scanTree(t, Config{}, root)
	groups := findDuplicates(t, s, inv)

	if len(groups) != 1 || len(groups[0].Paths) != 3 {
		t.Fatalf("FindDuplicates() = %v, want a single group of all three", groups)
	}
	const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if groups[0].Digest != emptySHA256 {
		t.Errorf("group digest = %s, want digest of empty input", groups[0].Digest)
	}
}

func TestFindDuplicates_DeterministicAcrossRuns(t *testing.T) {
	files := map[string]string{
		"a.dat":     "xxxx",
		"b.dat":     "xxxx",
		"c.dat":     "yyyy",
		"d.dat":     "yyyy",
		"sub/e.dat": "xxxx",
	}
	root := buildTree(t, files)

	s1, inv1 := scanTree(t, Config{HashWorkers: 8}, root)
	s2, inv2 := scanTree(t, Config{HashWorkers: 8}, root)

	first := findDuplicates(t, s1, inv1)
	second := findDuplicates(t, s2, inv2)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("groupings differ across runs:\n%v\n%v", first, second)
	}

	// No path may appear in more than one group.
	seen := make(map[string]bool)
	for _, g := range first {
		for _, p := range g.Paths {
			if seen[p] {
				t.Errorf("path %s appears in more than one group", p)
			}
			seen[p] = true
		}
	}
}

func TestFindDuplicates_Cancellation(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.dat": "same",
		"b.dat": "same",
	})

	s, inv := scanTree(t, Config{}, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FindDuplicates(ctx, inv); !errors.Is(err, context.Canceled) {
		t.Errorf("FindDuplicates() error = %v, want context.Canceled", err)
	}
}
