// Package scan implements the val1s inventory and duplicate detection
// engine.
//
// A Scanner performs one run over a filesystem tree in two strictly
// ordered phases. Scan walks the tree depth-first, applying the
// configured skip rules (basenames, extensions, glob patterns, absolute
// path prefixes, symlink policy) to prune excluded subtrees before
// descending, and records every remaining regular file into an ordered
// Inventory together with a size bucket index. FindDuplicates then
// resolves content digests for files whose size collides with at least
// one other file and groups byte-identical content by digest.
//
// Key Properties:
//
// Fail-safe traversal:
//   - Unclassifiable paths are excluded rather than aborting the walk
//   - Per-entry stat and read failures are logged and skipped
//   - Only a missing or non-directory root is fatal
//
// Hardlink-aware hashing:
//   - Digests are keyed by (device, inode) in an exclusive-claim cache
//   - Each distinct on-disk object is read at most once per run
//   - Hash failures are cached so bad paths are never retried
//
// Determinism:
//   - Discovery order follows sorted directory listings
//   - Group membership and ordering are independent of worker timing
//
// Hashing runs concurrently on a bounded worker pool; cancellation via
// context halts traversal and hashing promptly, yielding partial data.
package scan
