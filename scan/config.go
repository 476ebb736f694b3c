package scan

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHashAlgorithm is used when Config.HashAlgorithm is empty.
	DefaultHashAlgorithm = "sha256"

	// DefaultChunkSize is the read buffer size used when hashing file
	// content. 1 MiB bounds memory use independent of file size.
	DefaultChunkSize = 1 << 20
)

// Config holds the per-run scan settings. The zero value is usable: it
// scans with SHA-256, 1 MiB chunks, no skip rules, and symlinks excluded.
//
// A Config is copied into the Scanner at construction time; mutating it
// afterwards has no effect on a running scan.
type Config struct {
	// FollowSymlinks controls whether symlinks are resolved and followed
	// during traversal. When false (the default), symlinked entries are
	// excluded entirely.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// HashAlgorithm selects the content digest: "sha256" (default),
	// "sha1", "sha512", or "blake3".
	HashAlgorithm string `yaml:"hash_algorithm"`

	// ChunkSize is the hashing read buffer size in bytes.
	ChunkSize int `yaml:"chunk_size_bytes"`

	// HashWorkers bounds the number of concurrent hashing goroutines
	// during duplicate resolution. Zero means runtime.NumCPU().
	HashWorkers int `yaml:"hash_workers"`

	// SkipNames are exact basenames to exclude (files and directories).
	SkipNames []string `yaml:"skip_names"`

	// SkipExtensions are extension suffixes to exclude, matched
	// case-insensitively (".tmp" excludes both x.tmp and x.TMP).
	SkipExtensions []string `yaml:"skip_extensions"`

	// SkipPathPrefixes are absolute roots whose entire subtrees are
	// excluded. Containment is component-wise: "/var/lib" excludes
	// "/var/lib/x" but not "/var/libx".
	SkipPathPrefixes []string `yaml:"skip_path_prefixes"`

	// SkipGlobs are doublestar patterns matched against the full path,
	// e.g. "**/*.bak".
	SkipGlobs []string `yaml:"skip_globs"`
}

// LoadConfig reads a YAML profile into a Config. Unknown keys are
// rejected so a typo in a profile fails loudly instead of silently
// scanning with defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("loading profile %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return cfg, nil
}

// normalize fills in defaults and validates fixed-choice fields.
func (c *Config) normalize() error {
	if c.HashAlgorithm == "" {
		c.HashAlgorithm = DefaultHashAlgorithm
	}
	if _, err := newDigest(c.HashAlgorithm); err != nil {
		return err
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.HashWorkers <= 0 {
		c.HashWorkers = runtime.NumCPU()
	}
	return nil
}
