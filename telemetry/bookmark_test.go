package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, kind BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == kind {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_MeltSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Add some history with a steady spawn rate
	for i := 0; i < 5; i++ {
		stats := WindowStats{
			WindowEnd: float64(i) * 5,
			Spawned:   50,
			SpawnRate: 10,
		}
		if hasBookmark(bd.Check(stats), BookmarkMeltSurge) {
			t.Fatalf("steady window %d triggered a surge", i)
		}
	}

	// Now add a window with a spawn rate >2x the average
	surge := WindowStats{
		WindowEnd: 25,
		Spawned:   125,
		SpawnRate: 25,
	}
	if !hasBookmark(bd.Check(surge), BookmarkMeltSurge) {
		t.Error("expected melt_surge bookmark")
	}
}

func TestBookmarkDetector_MeltSurgeNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// A cold history has no average to surge against
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i) * 5})
	}
	surge := WindowStats{WindowEnd: 25, Spawned: 125, SpawnRate: 25}
	if hasBookmark(bd.Check(surge), BookmarkMeltSurge) {
		t.Error("surge against a zero average should not trigger")
	}
}

func TestBookmarkDetector_PoolSaturated(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEnd: float64(i) * 5, Droplets: 800})
	}

	first := WindowStats{WindowEnd: 15, Droplets: 1000, Rejected: 40}
	if !hasBookmark(bd.Check(first), BookmarkPoolSaturated) {
		t.Fatal("expected pool_saturated bookmark on first rejection")
	}

	// Still saturated: no second bookmark
	again := WindowStats{WindowEnd: 20, Droplets: 1000, Rejected: 60}
	if hasBookmark(bd.Check(again), BookmarkPoolSaturated) {
		t.Error("latched saturation triggered twice")
	}

	// A rejection-free window re-arms the latch
	bd.Check(WindowStats{WindowEnd: 25, Droplets: 700})
	second := WindowStats{WindowEnd: 30, Droplets: 1000, Rejected: 10}
	if !hasBookmark(bd.Check(second), BookmarkPoolSaturated) {
		t.Error("expected a new bookmark after the pool drained and refilled")
	}
}

func TestBookmarkDetector_ShelfSliver(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEnd: 5, ShelfScaleX: 1.0})
	bd.Check(WindowStats{WindowEnd: 10, ShelfScaleX: 0.3})

	sliver := WindowStats{WindowEnd: 15, ShelfScaleX: 0.08, Temperature: 4.2}
	if !hasBookmark(bd.Check(sliver), BookmarkShelfSliver) {
		t.Fatal("expected shelf_sliver bookmark")
	}

	// The shelf only keeps shrinking; no repeat
	if hasBookmark(bd.Check(WindowStats{WindowEnd: 20, ShelfScaleX: 0.05}), BookmarkShelfSliver) {
		t.Error("sliver triggered twice in one melt-through")
	}

	// A scene reset restores the shelf and re-arms the latch
	bd.Check(WindowStats{WindowEnd: 25, ShelfScaleX: 1.0})
	bd.Check(WindowStats{WindowEnd: 30, ShelfScaleX: 0.4})
	if !hasBookmark(bd.Check(WindowStats{WindowEnd: 35, ShelfScaleX: 0.06}), BookmarkShelfSliver) {
		t.Error("expected a new sliver bookmark after a reset")
	}
}

func TestBookmarkDetector_SettledPool(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggeredAt := -1
	triggers := 0
	for i := 0; i < 12; i++ {
		stats := WindowStats{
			WindowEnd: float64(i) * 5,
			Droplets:  300,
			SpeedMean: 5.0,
		}
		if hasBookmark(bd.Check(stats), BookmarkSettledPool) {
			if triggeredAt < 0 {
				triggeredAt = i
			}
			triggers++
		}
	}

	if triggers != 1 {
		t.Fatalf("settled_pool triggered %d times, want exactly once", triggers)
	}
	// Counting starts once four windows of history exist, so the fifth
	// consecutive calm window is the ninth check.
	if triggeredAt != 8 {
		t.Errorf("settled_pool triggered at window %d, want 8", triggeredAt)
	}
}

func TestBookmarkDetector_SpawningInterruptsSettling(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 12; i++ {
		stats := WindowStats{
			WindowEnd: float64(i) * 5,
			Droplets:  300,
			SpeedMean: 5.0,
		}
		if i == 7 {
			stats.Spawned = 12 // a late burst resets the count
		}
		if hasBookmark(bd.Check(stats), BookmarkSettledPool) {
			t.Fatalf("settled_pool triggered at window %d despite the burst", i)
		}
	}
}
