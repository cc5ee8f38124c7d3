package game

import (
	"log/slog"

	"github.com/KIM3310/ecotide/physics"
	"github.com/KIM3310/ecotide/sim"
	"github.com/KIM3310/ecotide/telemetry"
)

// Stats windows kept for the perf overlay's droplet trend.
const trendMaxSamples = 120

// Stats windows of history behind bookmark detection.
const bookmarkHistory = 10

// flushTelemetry checks if the stats window should be flushed and handles
// bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	// Sample the state the window closes on
	g.speeds = g.engine.DropletSpeeds(g.speeds[:0])
	grav := g.engine.Gravity()
	shelf := g.engine.Shelf()

	stats := g.collector.Flush(
		g.simTime,
		g.engine.DropletCount(),
		g.engine.Temperature(),
		shelf.ScaleX,
		shelf.Alpha,
		grav.X,
		grav.Y,
		g.speeds,
	)
	perfStats := g.perfCollector.Stats()

	// Feed the overlay trend
	g.dropletTrend = append(g.dropletTrend, float64(stats.Droplets))
	if len(g.dropletTrend) > trendMaxSamples {
		g.dropletTrend = g.dropletTrend[1:]
	}

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	bookmarks := g.bookmarkDetector.Check(stats)
	for _, bm := range bookmarks {
		if g.logStats {
			bm.LogBookmark()
		}

		// Write to CSV if output manager is enabled
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		// Save snapshot on bookmark
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	scene := g.engine.CaptureScene()
	bounds := g.engine.Bounds()

	snapshot := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		RNGSeed:      g.seed,
		BoundsWidth:  bounds.Width(),
		BoundsHeight: bounds.Height(),
		Tick:         g.tick,
		SimTime:      g.simTime,
		Temperature:  scene.Temperature,
		Pitch:        float64(g.controls.Pitch),
		Roll:         float64(g.controls.Roll),
		ShelfScaleX:  scene.ShelfScaleX,
		ShelfScaleY:  scene.ShelfScaleY,
		ShelfAlpha:   scene.ShelfAlpha,
		Bookmark:     bookmark,
	}

	snapshot.Droplets = make([]telemetry.DropletJSON, 0, len(scene.Droplets))
	for _, d := range scene.Droplets {
		snapshot.Droplets = append(snapshot.Droplets, telemetry.DropletJSON{
			X:      d.Pos.X,
			Y:      d.Pos.Y,
			VelX:   d.Vel.X,
			VelY:   d.Vel.Y,
			Radius: d.Radius,
		})
	}

	return snapshot
}

// RestoreFromSnapshot replaces the live scene with a saved one. The window
// keeps its current size; droplets that land outside it are reclaimed by the
// next out-of-bounds sweep.
func (g *Game) RestoreFromSnapshot(snapshot *telemetry.Snapshot) {
	scene := sim.SceneState{
		ShelfScaleX: snapshot.ShelfScaleX,
		ShelfScaleY: snapshot.ShelfScaleY,
		ShelfAlpha:  snapshot.ShelfAlpha,
		Temperature: snapshot.Temperature,
		Droplets:    make([]sim.DropletState, 0, len(snapshot.Droplets)),
	}
	for _, d := range snapshot.Droplets {
		scene.Droplets = append(scene.Droplets, sim.DropletState{
			Pos:    physics.Vec2{X: d.X, Y: d.Y},
			Vel:    physics.Vec2{X: d.VelX, Y: d.VelY},
			Radius: d.Radius,
		})
	}

	restored := g.engine.RestoreScene(scene)

	g.controls.Temperature = float32(g.engine.Temperature())
	g.controls.Pitch = float32(snapshot.Pitch)
	g.controls.Roll = float32(snapshot.Roll)
	g.tick = snapshot.Tick
	g.simTime = snapshot.SimTime

	// The clock may have jumped in either direction
	g.collector.Reset(g.simTime)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(bookmarkHistory)
	g.dropletTrend = g.dropletTrend[:0]
	g.warnedCritical = false
	g.loggedDepleted = false
	g.meltEpisode = false

	slog.Info("snapshot restored",
		"tick", snapshot.Tick,
		"sim_time", snapshot.SimTime,
		"droplets", restored,
		"temperature", g.engine.Temperature(),
	)
}
