package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/config"
	"github.com/KIM3310/ecotide/game"
	"github.com/KIM3310/ecotide/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for scene snapshot files")
	loadSnapshot := flag.String("load-snapshot", "", "Scene snapshot to restore at startup")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	temperature := flag.Float64("temperature", 0, "Starting temperature, 1-5 (0 = use config)")
	temperatureRamp := flag.Float64("temperature-ramp", 0, "Temperature increase per simulated second, headless only (0 = hold)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	// Build game options
	opts := game.Options{
		Seed:             rngSeed,
		LogStats:         *logStats,
		StatsWindowSec:   statsWindowSec,
		OutputDir:        *outputDir,
		SnapshotDir:      *snapshotDir,
		Headless:         *headless,
		StartTemperature: *temperature,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		var dropletHistory []float64
		opts.StatsCallback = func(stats telemetry.WindowStats) {
			dropletHistory = append(dropletHistory, float64(stats.Droplets))
		}

		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		if *loadSnapshot != "" {
			restoreSnapshot(g, *loadSnapshot)
		}

		startTemp := cfg.Simulation.StartTemperature
		if *temperature > 0 {
			startTemp = *temperature
		}

		slog.Info("starting headless run",
			"seed", rngSeed,
			"stats_window", statsWindowSec,
			"max_ticks", *maxTicks,
			"temperature", startTemp,
			"temperature_ramp", *temperatureRamp,
		)

		for {
			if *temperatureRamp > 0 {
				g.SetTemperature(startTemp + *temperatureRamp*g.SimTime())
			}
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "droplets", g.DropletCount())
				break
			}
		}

		// Show how the droplet population moved over the run
		if len(dropletHistory) >= 2 {
			fmt.Println(asciigraph.Plot(dropletHistory,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("droplets per %.0fs stats window", statsWindowSec)),
			))
		}
	} else {
		// Graphical mode
		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Ecotide")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		if *loadSnapshot != "" {
			restoreSnapshot(g, *loadSnapshot)
		}

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				break
			}
		}
	}
}

// restoreSnapshot loads a saved scene into a freshly created game.
func restoreSnapshot(g *game.Game, path string) {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		slog.Error("failed to load snapshot", "path", path, "error", err)
		os.Exit(1)
	}
	g.RestoreFromSnapshot(snapshot)
}
