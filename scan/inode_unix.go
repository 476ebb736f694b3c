//go:build !windows

package scan

import (
	"io/fs"
	"syscall"
)

// inodeKeyFor extracts (device, inode) identity from stat metadata.
// The second return is false when the platform stat type is unavailable.
func inodeKeyFor(info fs.FileInfo) (inodeKey, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return inodeKey{}, false
	}
	return inodeKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
