package scan

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
)

// newDigest returns a fresh hash state for the named algorithm.
func newDigest(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "blake3":
		return blake3.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, algorithm)
}

// hashFile computes the content digest of the file at path, reading in
// ChunkSize blocks so memory use stays flat regardless of file size.
// The digest is returned as a lowercase hex string.
func (s *Scanner) hashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrExpectedFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := newDigest(s.cfg.HashAlgorithm)
	if err != nil {
		return "", err
	}
	buf := make([]byte, s.cfg.ChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
