package conform

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// mediaInfo mirrors the JSON emitted by `mediainfo --Output=JSON`. Each
// track is kept as a loose key/value map since the attribute set varies
// wildly by container and codec.
type mediaInfo struct {
	Media struct {
		Track []map[string]any `json:"track"`
	} `json:"media"`
}

// probe shells out to the mediainfo binary for one file. Callers treat
// any failure (binary missing, unparseable file) as "no metadata" and
// skip the file rather than aborting the check.
func probe(ctx context.Context, path string) (*mediaInfo, error) {
	out, err := exec.CommandContext(ctx, "mediainfo", "--Output=JSON", path).Output()
	if err != nil {
		return nil, fmt.Errorf("mediainfo %s: %w", path, err)
	}
	var info mediaInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("mediainfo output for %s: %w", path, err)
	}
	return &info, nil
}
