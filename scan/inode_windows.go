//go:build windows

package scan

import "io/fs"

// Windows exposes no inode identity through FileInfo.Sys() without extra
// handle juggling, so hardlink-aware caching degrades to plain hashing.
func inodeKeyFor(info fs.FileInfo) (inodeKey, bool) {
	return inodeKey{}, false
}
