// Package version provides version information and build metadata for val1s.
//
// Version, Commit, and Date are injected at release time via -ldflags;
// development builds resolve them from debug.ReadBuildInfo() so version
// reporting works without any build flags at all.
package version
