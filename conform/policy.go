package conform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Policy describes expected stream attributes for media files. Rules
// map a stream type ("General", "Video", "Audio", "Image") to the
// attribute values every matching track must carry, e.g.
//
//	{"name": "prores_hq", "rules": {"Video": {"Format": "ProRes"}}}
type Policy struct {
	Name  string                    `json:"name"`
	Rules map[string]map[string]any `json:"rules"`
}

// LoadPolicy reads a JSON policy file. A policy without a name falls
// back to the file's basename so reports always carry an identifier.
func LoadPolicy(path string) (Policy, error) {
	var p Policy
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("loading policy %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing policy %s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}
