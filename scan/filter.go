package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Reason classifies why the filter excluded a path.
type Reason int

const (
	KeepPath Reason = iota
	SkipSymlink
	SkipName
	SkipExtension
	SkipGlob
	SkipPrefix
	SkipUnresolvable
)

func (r Reason) String() string {
	switch r {
	case KeepPath:
		return "keep"
	case SkipSymlink:
		return "symlink"
	case SkipName:
		return "name"
	case SkipExtension:
		return "extension"
	case SkipGlob:
		return "glob"
	case SkipPrefix:
		return "prefix"
	case SkipUnresolvable:
		return "unresolvable"
	}
	return "unknown"
}

// Decision is the result of classifying one path. When the path could
// not be inspected at all, Skip is true, Reason is SkipUnresolvable, and
// Err carries the underlying failure as diagnostic data.
type Decision struct {
	Skip   bool
	Reason Reason
	Err    error
}

// Filter decides whether a path is excluded from scanning. It is a pure
// predicate over the path and the configured skip rules; any error while
// inspecting or resolving a path resolves to skip (fail-safe) rather
// than aborting the traversal.
type Filter struct {
	followSymlinks bool
	names          map[string]struct{}
	exts           map[string]struct{}
	globs          []string
	prefixes       []string
}

// NewFilter builds a Filter from the skip rules in cfg. Skip prefixes
// are made absolute and resolved through symlinks once here, so the
// per-path containment check compares canonical paths on both sides.
func NewFilter(cfg Config) (*Filter, error) {
	f := &Filter{
		followSymlinks: cfg.FollowSymlinks,
		names:          make(map[string]struct{}, len(cfg.SkipNames)),
		exts:           make(map[string]struct{}, len(cfg.SkipExtensions)),
	}
	for _, n := range cfg.SkipNames {
		f.names[n] = struct{}{}
	}
	for _, e := range cfg.SkipExtensions {
		f.exts[strings.ToLower(e)] = struct{}{}
	}
	for _, g := range cfg.SkipGlobs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSkipGlob, g)
		}
		f.globs = append(f.globs, g)
	}
	for _, p := range cfg.SkipPathPrefixes {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("skip prefix %q: %w", p, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		f.prefixes = append(f.prefixes, abs)
	}
	return f, nil
}

// Decide classifies path. Evaluation order: symlink policy, then
// basename and extension, then glob patterns, then canonicalized
// containment against the excluded roots.
func (f *Filter) Decide(path string) Decision {
	if !f.followSymlinks {
		info, err := os.Lstat(path)
		if err != nil {
			return Decision{Skip: true, Reason: SkipUnresolvable, Err: err}
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return Decision{Skip: true, Reason: SkipSymlink}
		}
	}

	base := filepath.Base(path)
	if _, ok := f.names[base]; ok {
		return Decision{Skip: true, Reason: SkipName}
	}
	if _, ok := f.exts[strings.ToLower(filepath.Ext(path))]; ok {
		return Decision{Skip: true, Reason: SkipExtension}
	}

	for _, g := range f.globs {
		// Patterns were validated at construction time.
		if ok, _ := doublestar.PathMatch(g, path); ok {
			return Decision{Skip: true, Reason: SkipGlob}
		}
	}

	if len(f.prefixes) > 0 {
		resolved, err := canonicalize(path)
		if err != nil {
			return Decision{Skip: true, Reason: SkipUnresolvable, Err: err}
		}
		for _, root := range f.prefixes {
			if containsPath(root, resolved) {
				return Decision{Skip: true, Reason: SkipPrefix}
			}
		}
	}

	return Decision{}
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// containsPath reports whether p is root itself or lies under it.
// Containment is component-wise: "/var/lib" does not contain "/var/libx".
func containsPath(root, p string) bool {
	if p == root {
		return true
	}
	if root == string(os.PathSeparator) {
		return filepath.IsAbs(p)
	}
	return strings.HasPrefix(p, root+string(os.PathSeparator))
}
