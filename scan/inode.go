package scan

// inodeKey identifies a unique on-disk data object. All hardlinks to the
// same inode share one key, so one key is hashed at most once per run.
type inodeKey struct {
	dev uint64
	ino uint64
}
