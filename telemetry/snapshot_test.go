package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Version:      SnapshotVersion,
		RNGSeed:      42,
		BoundsWidth:  960,
		BoundsHeight: 700,
		Tick:         1234,
		SimTime:      20.5,
		Temperature:  3.5,
		Pitch:        0.1,
		Roll:         -0.2,
		ShelfScaleX:  0.4,
		ShelfScaleY:  0.55,
		ShelfAlpha:   0.45,
		Droplets: []DropletJSON{
			{X: 480, Y: 390, VelX: 12, VelY: -30, Radius: 6.5},
			{X: 402, Y: 105, VelX: -3, VelY: 0.5, Radius: 7.1},
		},
	}
}

func TestSaveLoadSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(dir, "snapshot_1234.json"); path != want {
		t.Errorf("snapshot path: got %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snap.RNGSeed {
		t.Errorf("RNGSeed mismatch: got %v, want %v", loaded.RNGSeed, snap.RNGSeed)
	}
	if loaded.Tick != snap.Tick {
		t.Errorf("Tick mismatch: got %v, want %v", loaded.Tick, snap.Tick)
	}
	if loaded.SimTime != snap.SimTime {
		t.Errorf("SimTime mismatch: got %v, want %v", loaded.SimTime, snap.SimTime)
	}
	if loaded.Temperature != snap.Temperature {
		t.Errorf("Temperature mismatch: got %v, want %v", loaded.Temperature, snap.Temperature)
	}
	if loaded.Pitch != snap.Pitch || loaded.Roll != snap.Roll {
		t.Errorf("tilt mismatch: got (%v, %v), want (%v, %v)", loaded.Pitch, loaded.Roll, snap.Pitch, snap.Roll)
	}
	if loaded.ShelfScaleX != snap.ShelfScaleX || loaded.ShelfScaleY != snap.ShelfScaleY || loaded.ShelfAlpha != snap.ShelfAlpha {
		t.Errorf("shelf mismatch: got (%v, %v, %v)", loaded.ShelfScaleX, loaded.ShelfScaleY, loaded.ShelfAlpha)
	}
	if len(loaded.Droplets) != len(snap.Droplets) {
		t.Fatalf("droplet count mismatch: got %d, want %d", len(loaded.Droplets), len(snap.Droplets))
	}
	for i, d := range loaded.Droplets {
		if d != snap.Droplets[i] {
			t.Errorf("droplet %d mismatch: got %+v, want %+v", i, d, snap.Droplets[i])
		}
	}
	if loaded.Bookmark != nil {
		t.Errorf("unexpected bookmark: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilenameIncludesBookmark(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()
	snap.Tick = 500
	snap.Bookmark = &Bookmark{
		Type:        BookmarkMeltSurge,
		SimTime:     8.3,
		Description: "test surge",
	}

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(dir, "snapshot_500_melt_surge.json"); path != want {
		t.Errorf("snapshot path: got %q, want %q", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Bookmark == nil {
		t.Fatal("bookmark lost in round trip")
	}
	if loaded.Bookmark.Type != BookmarkMeltSurge {
		t.Errorf("bookmark type: got %q, want %q", loaded.Bookmark.Type, BookmarkMeltSurge)
	}
}

func TestLoadSnapshotRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()
	snap.Version = 99

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for a snapshot from a different format version")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for a missing snapshot file")
	}
}
