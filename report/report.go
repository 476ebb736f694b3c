// Package report serializes scan artifacts to CSV for downstream
// tooling, which parses by column name.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/val1s-archive/val1s/conform"
	"github.com/val1s-archive/val1s/scan"
)

// Stable column headers. Downstream consumers key on these names, so
// they must not change between releases.
var (
	InventoryHeader = []string{"path", "size_bytes", "modified_time_utc"}
	DuplicateHeader = []string{"digest", "path"}
	FindingsHeader  = []string{"path", "stream_type", "key", "actual", "expected"}
)

// Timestamp formats t for use in report filenames, always UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format("20060102T150405")
}

// WriteInventory writes one row per file record in traversal order.
// Modified times are emitted as ISO-8601 UTC instants.
func WriteInventory(w io.Writer, records []scan.FileRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InventoryHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Path,
			strconv.FormatInt(rec.Size, 10),
			rec.Modified.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDuplicates writes one row per (group, member) pair. Groups with
// fewer than two members were already discarded by the engine.
func WriteDuplicates(w io.Writer, groups []scan.DuplicateGroup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DuplicateHeader); err != nil {
		return err
	}
	for _, g := range groups {
		for _, p := range g.Paths {
			if err := cw.Write([]string{g.Digest, p}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFindings writes one row per conformance finding.
func WriteFindings(w io.Writer, findings []conform.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FindingsHeader); err != nil {
		return err
	}
	for _, f := range findings {
		row := []string{f.Path, f.StreamType, f.Key, f.Actual, f.Expected}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates dir if needed and writes a timestamped CSV named
// val1s_<kind>_<ts>.csv via the supplied writer function, returning the
// full path of the report.
func WriteFile(dir, kind string, ts time.Time, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("val1s_%s_%s.csv", kind, Timestamp(ts)))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
