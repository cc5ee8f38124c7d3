// Package game wires the simulation core to its shell: raylib windowing and
// input, the control panel, telemetry collection, and CSV output. The core
// in sim stays free of all of it.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/config"
	"github.com/KIM3310/ecotide/physics"
	"github.com/KIM3310/ecotide/sim"
	"github.com/KIM3310/ecotide/telemetry"
	"github.com/KIM3310/ecotide/ui"
)

// Ticks per second driven in headless mode.
const headlessDT = 1.0 / 60.0

// Options configures game initialization.
type Options struct {
	Seed             int64
	LogStats         bool
	StatsWindowSec   float64
	OutputDir        string
	SnapshotDir      string
	Headless         bool
	StartTemperature float64 // 0 = use config value

	// StatsCallback is invoked with each flushed stats window. Used by
	// headless harnesses to collect results without parsing logs.
	StatsCallback func(stats telemetry.WindowStats)
}

// Game holds the complete toy state.
type Game struct {
	phys   physics.World
	engine *sim.Engine
	rng    *rand.Rand
	seed   int64

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	statsCallback    func(stats telemetry.WindowStats)
	logStats         bool
	snapshotDir      string

	hud       *ui.HUD
	panel     *ui.ControlPanel
	showPanel bool
	showPerf  bool

	// Droplet counts from recent stats windows, for the perf overlay trend
	dropletTrend []float64

	// Control state. Both the keyboard and the panel edit these; the
	// engine sees the merged result once per frame. tiltEnabled stands in
	// for device-motion availability: off means no attitude sample this
	// frame and gravity holds.
	controls    ui.PanelState
	tiltEnabled bool

	simTime  float64
	tick     int32
	paused   bool
	headless bool

	screenWidth  float32
	screenHeight float32

	// Reused per-frame scratch buffers
	droplets []sim.DropletView
	speeds   []float64

	warnedCritical bool
	loggedDepleted bool
	meltEpisode    bool
}

// NewGameWithOptions creates a game instance. config.Init must have run.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	bounds := physics.Bounds{
		MinX: 0,
		MinY: 0,
		MaxX: float64(cfg.Screen.Width),
		MaxY: float64(cfg.Screen.Height),
	}

	g := &Game{
		rng:           rand.New(rand.NewSource(opts.Seed)),
		seed:          opts.Seed,
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
		showPanel:     true,
		tiltEnabled:   true,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	g.phys = physics.NewChipmunkWorld(bounds, sim.FrameMaterial)
	g.engine = sim.NewEngine(g.phys, bounds, g.rng)

	g.collector = telemetry.NewCollector(opts.StatsWindowSec)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(bookmarkHistory)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.outputManager = om
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	startTemp := cfg.Simulation.StartTemperature
	if opts.StartTemperature > 0 {
		startTemp = sim.ClampTemperature(opts.StartTemperature)
	}
	g.controls = ui.PanelState{Temperature: float32(startTemp)}

	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.panel = ui.NewControlPanel(cfg.Controls.TiltMax)
	}

	slog.Info("scene_ready",
		"seed", opts.Seed,
		"temperature", startTemp,
		"droplets", g.engine.DropletCount(),
		"bounds_w", bounds.Width(),
		"bounds_h", bounds.Height(),
	)

	return g
}

// Update advances one graphical frame: input, simulation, physics,
// telemetry. Drawing is separate so the perf breakdown can tell them apart.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if g.paused {
		return
	}

	g.step(rl.GetTime())
}

// UpdateHeadless advances one fixed-rate tick without any raylib calls.
func (g *Game) UpdateHeadless() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartFrame()
	g.step(g.simTime + headlessDT)
	g.perfCollector.EndFrame()
}

// step runs the shared per-frame pipeline under the given wall-clock time.
func (g *Game) step(now float64) {
	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	report := g.engine.Advance(now, sim.Input{
		Temperature: float64(g.controls.Temperature),
		Tilt: sim.Tilt{
			Pitch: float64(g.controls.Pitch),
			Roll:  float64(g.controls.Roll),
		},
		HasTilt: g.tiltEnabled,
	})
	g.simTime += report.DT
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.phys.Step(report.DT)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame()
	g.collector.RecordSpawned(report.Spawned)
	g.collector.RecordRejected(report.Rejected)
	g.collector.RecordPruned(report.Pruned)
	for i := 0; i < report.Bursts; i++ {
		g.collector.RecordBurst()
	}

	// First burst after idle marks the start of a melt episode. The episode
	// ends when the temperature falls back under the melt onset.
	if report.Bursts > 0 && !g.meltEpisode {
		g.meltEpisode = true
		g.writeEvent(telemetry.NewMeltStartEvent(g.tick, g.simTime, report.Spawned))
	}
	if g.meltEpisode && !g.engine.MeltActive() {
		g.meltEpisode = false
	}

	g.logMeltEvents()
	g.flushTelemetry()
}

// resetScene restores the launch state and clears the one-shot log latches.
func (g *Game) resetScene() {
	g.engine.Reset()
	g.controls.Pitch = 0
	g.controls.Roll = 0
	g.warnedCritical = false
	g.loggedDepleted = false
	g.meltEpisode = false
	g.writeEvent(telemetry.NewResetEvent(g.tick, g.simTime))
	slog.Info("scene_reset", "tick", g.tick, "sim_time", g.simTime)
}

// SetTemperature overrides the temperature control, as a panel edit would.
// Headless drivers use this to script heat profiles.
func (g *Game) SetTemperature(t float64) {
	g.controls.Temperature = float32(sim.ClampTemperature(t))
}

// SetTilt overrides the tilt controls (radians).
func (g *Game) SetTilt(pitch, roll float64) {
	g.controls.Pitch = float32(pitch)
	g.controls.Roll = float32(roll)
}

// SetTiltEnabled switches the stand-in tilt source on or off. While off the
// engine receives no attitude samples and gravity holds its last value.
func (g *Game) SetTiltEnabled(enabled bool) {
	g.tiltEnabled = enabled
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns accumulated simulation seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// DropletCount returns the number of live droplets.
func (g *Game) DropletCount() int {
	return g.engine.DropletCount()
}

// Temperature returns the last accepted temperature.
func (g *Game) Temperature() float64 {
	return g.engine.Temperature()
}

// Depleted reports whether the shelf has fully melted.
func (g *Game) Depleted() bool {
	return g.engine.Depleted()
}

// Unload flushes and closes any open output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
}
