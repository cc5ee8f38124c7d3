package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/KIM3310/ecotide/game"
	"github.com/KIM3310/ecotide/telemetry"
)

// runResult holds the outcome of one headless melt run.
type runResult struct {
	temperature float64
	seed        int64

	meanDroplets  float64
	peakDroplets  int
	finalDroplets int
	spawned       int
	rejected      int
	pruned        int
	rejectRate    float64
	meanSpeed     float64
	depletedAt    float64 // sim-seconds to melt-through, -1 if the shelf held
}

// tempSummary aggregates all seed runs at one temperature.
type tempSummary struct {
	temperature   float64
	meanDroplets  float64
	stdDroplets   float64
	peakDroplets  int
	rejectRate    float64
	depleted      int     // runs whose shelf melted through
	meanDepleteAt float64 // mean sim-seconds to melt-through, over those runs
}

// runMelt executes one headless run at a fixed temperature and summarizes it.
func runMelt(temp float64, seed int64, maxTicks int, statsWindow float64) runResult {
	var windows []telemetry.WindowStats

	g := game.NewGameWithOptions(game.Options{
		Seed:             seed,
		Headless:         true,
		StatsWindowSec:   statsWindow,
		StartTemperature: temp,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})

	depletedAt := -1.0
	for int(g.Tick()) < maxTicks {
		g.UpdateHeadless()
		if depletedAt < 0 && g.Depleted() {
			depletedAt = g.SimTime()
		}
	}

	result := runResult{
		temperature:   temp,
		seed:          seed,
		finalDroplets: g.DropletCount(),
		depletedAt:    depletedAt,
	}
	g.Unload()

	summarizeWindows(&result, windows)
	return result
}

// summarizeWindows folds the window stream into the run summary.
func summarizeWindows(r *runResult, windows []telemetry.WindowStats) {
	if len(windows) == 0 {
		return
	}

	droplets := make([]float64, 0, len(windows))
	speeds := make([]float64, 0, len(windows))
	for _, w := range windows {
		droplets = append(droplets, float64(w.Droplets))
		speeds = append(speeds, w.SpeedMean)
		if w.Droplets > r.peakDroplets {
			r.peakDroplets = w.Droplets
		}
		r.spawned += w.Spawned
		r.rejected += w.Rejected
		r.pruned += w.Pruned
	}

	r.meanDroplets = stat.Mean(droplets, nil)
	r.meanSpeed = stat.Mean(speeds, nil)
	if attempts := r.spawned + r.rejected; attempts > 0 {
		r.rejectRate = float64(r.rejected) / float64(attempts)
	}
}

// summarize groups per-seed results by temperature, preserving grid order.
func summarize(temps []float64, results []runResult) []tempSummary {
	byTemp := make(map[float64][]runResult, len(temps))
	for _, r := range results {
		byTemp[r.temperature] = append(byTemp[r.temperature], r)
	}

	summaries := make([]tempSummary, 0, len(temps))
	for _, t := range temps {
		runs := byTemp[t]
		if len(runs) == 0 {
			continue
		}

		means := make([]float64, 0, len(runs))
		rejects := make([]float64, 0, len(runs))
		s := tempSummary{temperature: t}
		var depleteSum float64
		for _, r := range runs {
			means = append(means, r.meanDroplets)
			rejects = append(rejects, r.rejectRate)
			if r.peakDroplets > s.peakDroplets {
				s.peakDroplets = r.peakDroplets
			}
			if r.depletedAt >= 0 {
				s.depleted++
				depleteSum += r.depletedAt
			}
		}

		s.meanDroplets = stat.Mean(means, nil)
		if len(means) >= 2 {
			s.stdDroplets = stat.StdDev(means, nil)
		}
		s.rejectRate = stat.Mean(rejects, nil)
		if s.depleted > 0 {
			s.meanDepleteAt = depleteSum / float64(s.depleted)
		}

		summaries = append(summaries, s)
	}
	return summaries
}

// writeCSV saves one row per run to sweep.csv under dir.
func writeCSV(dir string, results []runResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, "sweep.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating sweep.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{
		"temperature", "seed", "mean_droplets", "peak_droplets", "final_droplets",
		"spawned", "rejected", "pruned", "reject_rate", "mean_speed", "depleted_at",
	})
	for _, r := range results {
		w.Write([]string{
			fmt.Sprintf("%.2f", r.temperature),
			strconv.FormatInt(r.seed, 10),
			fmt.Sprintf("%.1f", r.meanDroplets),
			strconv.Itoa(r.peakDroplets),
			strconv.Itoa(r.finalDroplets),
			strconv.Itoa(r.spawned),
			strconv.Itoa(r.rejected),
			strconv.Itoa(r.pruned),
			fmt.Sprintf("%.3f", r.rejectRate),
			fmt.Sprintf("%.1f", r.meanSpeed),
			fmt.Sprintf("%.1f", r.depletedAt),
		})
	}
	w.Flush()

	return path, w.Error()
}
