package scan

import "errors"

// Sentinel errors for package scan.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Precondition errors
	ErrNotDirectory = errors.New("scan root is not a directory")

	// File type errors
	ErrExpectedFile = errors.New("expected file, got directory")

	// Configuration errors
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")
	ErrInvalidChunkSize     = errors.New("chunk size must be positive")
	ErrInvalidSkipGlob      = errors.New("invalid skip glob pattern")
)
