package scan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestConfigNormalize_Defaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if cfg.HashAlgorithm != DefaultHashAlgorithm {
		t.Errorf("HashAlgorithm = %q, want %q", cfg.HashAlgorithm, DefaultHashAlgorithm)
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.HashWorkers != runtime.NumCPU() {
		t.Errorf("HashWorkers = %d, want NumCPU", cfg.HashWorkers)
	}
}

func TestConfigNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"unknown algorithm", Config{HashAlgorithm: "crc32"}, ErrUnknownHashAlgorithm},
		{"negative chunk size", Config{ChunkSize: -1}, ErrInvalidChunkSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.normalize(); !errors.Is(err, tt.wantErr) {
				t.Errorf("normalize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")
	profile := `follow_symlinks: true
hash_algorithm: blake3
chunk_size_bytes: 65536
skip_names: [".git", ".DS_Store"]
skip_extensions: [".tmp"]
skip_path_prefixes: ["/proc", "/sys"]
skip_globs: ["**/*.bak"]
`
	if err := os.WriteFile(path, []byte(profile), 0644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := Config{
		FollowSymlinks:   true,
		HashAlgorithm:    "blake3",
		ChunkSize:        65536,
		SkipNames:        []string{".git", ".DS_Store"},
		SkipExtensions:   []string{".tmp"},
		SkipPathPrefixes: []string{"/proc", "/sys"},
		SkipGlobs:        []string{"**/*.bak"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "typo.yaml")
	os.WriteFile(path, []byte("skip_namez: [\".git\"]\n"), 0644)

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() must reject profiles with unknown keys")
	}
}
