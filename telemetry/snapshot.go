package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete scene state for replay: melt progress, the
// control inputs, and every droplet mid-flight.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	BoundsWidth  float64 `json:"bounds_width"`
	BoundsHeight float64 `json:"bounds_height"`

	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Temperature float64 `json:"temperature"`
	Pitch       float64 `json:"pitch"`
	Roll        float64 `json:"roll"`

	ShelfScaleX float64 `json:"shelf_scale_x"`
	ShelfScaleY float64 `json:"shelf_scale_y"`
	ShelfAlpha  float64 `json:"shelf_alpha"`

	Droplets []DropletJSON `json:"droplets"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// DropletJSON holds one droplet's restorable state.
type DropletJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Radius float64 `json:"radius"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, expected %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
