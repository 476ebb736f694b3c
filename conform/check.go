// Package conform evaluates media files against a JSON format policy.
// It consumes the inventory produced by package scan and reports every
// attribute that deviates from the policy's expected values.
package conform

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/val1s-archive/val1s/scan"
)

// Finding is one policy deviation: a track attribute whose actual value
// differs from (or is missing against) the policy's expectation.
type Finding struct {
	Path       string
	StreamType string
	Key        string
	Actual     string
	Expected   string
}

// Checker runs a Policy over inventoried files.
type Checker struct {
	policy Policy
}

// NewChecker returns a Checker for policy.
func NewChecker(policy Policy) *Checker {
	return &Checker{policy: policy}
}

// Check probes each inventoried file with mediainfo and evaluates its
// tracks against the policy. Files mediainfo cannot parse are logged
// and skipped; a single bad file never aborts the check.
func (c *Checker) Check(ctx context.Context, records []scan.FileRecord) ([]Finding, error) {
	var findings []Finding
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return findings, err
		}
		info, err := probe(ctx, rec.Path)
		if err != nil {
			log.Printf("warning: %v", err)
			continue
		}
		findings = append(findings, c.policy.evaluate(rec.Path, info)...)
	}
	return findings, nil
}

// evaluate compares every track of info against the policy rules for
// its stream type. Rule iteration is sorted so findings come out in a
// stable order for a given file.
func (p Policy) evaluate(path string, info *mediaInfo) []Finding {
	var findings []Finding

	streamTypes := make([]string, 0, len(p.Rules))
	for st := range p.Rules {
		streamTypes = append(streamTypes, st)
	}
	sort.Strings(streamTypes)

	for _, streamType := range streamTypes {
		conditions := p.Rules[streamType]
		keys := make([]string, 0, len(conditions))
		for k := range conditions {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, track := range info.Media.Track {
			if attrString(track["@type"]) != streamType {
				continue
			}
			for _, key := range keys {
				expected := attrString(conditions[key])
				actual := attrString(track[key])
				if actual != expected {
					findings = append(findings, Finding{
						Path:       path,
						StreamType: streamType,
						Key:        key,
						Actual:     actual,
						Expected:   expected,
					})
				}
			}
		}
	}
	return findings
}

// attrString normalizes a JSON attribute value for comparison.
// mediainfo emits most values as strings; policies may use numbers.
func attrString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without the
		// trailing ".0" so policy `"Width": 1920` matches track "1920".
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%v", v)
}
