package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags at release build time; development builds fall back
// to module build info.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the resolved version metadata for this binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get resolves version metadata, preferring compile-time values and
// falling back to the Go build info embedded in the binary.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		if info.Version == "dev" {
			info.Version = "development"
		}
		return info
	}

	if info.Version == "dev" || info.Version == "" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		} else {
			info.Version = "development"
		}
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "unknown" || info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.Date == "unknown" || info.Date == "" {
				info.Date = setting.Value
			}
		}
	}
	return info
}

// String formats the resolved version with short commit and build date
// when they are known.
func (i Info) String() string {
	if len(i.Commit) > 7 && i.Commit != "unknown" {
		short := i.Commit[:7]
		if i.Date != "unknown" {
			return fmt.Sprintf("%s (%s, built %s)", i.Version, short, i.Date)
		}
		return fmt.Sprintf("%s (%s)", i.Version, short)
	}
	return i.Version
}

// GetFullVersion returns the formatted version string for CLI display.
func GetFullVersion() string {
	return Get().String()
}
