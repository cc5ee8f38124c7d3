// Package main sweeps the melt across a temperature grid, running headless
// scenes in parallel and summarizing how the droplet population responds.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/KIM3310/ecotide/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// job names one headless run on the grid.
type job struct {
	temperature float64
	seed        int64
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	tempMin := flag.Float64("temp-min", 1.5, "Low end of the temperature grid")
	tempMax := flag.Float64("temp-max", 5.0, "High end of the temperature grid")
	steps := flag.Int("steps", 8, "Number of temperatures in the grid")
	seeds := flag.Int("seeds", 3, "Seeds per temperature")
	maxTicks := flag.Int("max-ticks", 7200, "Ticks per run (60 ticks = one simulated second)")
	statsWindow := flag.Float64("stats-window", 5.0, "Stats window size in seconds")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel runs")
	outputDir := flag.String("output", "", "Output directory for sweep.csv (empty = print only)")
	flag.Parse()

	if *steps < 1 {
		log.Fatal("--steps must be at least 1")
	}
	if *seeds < 1 {
		log.Fatal("--seeds must be at least 1")
	}
	if *workers < 1 {
		*workers = 1
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Build the temperature grid
	temps := make([]float64, *steps)
	for i := range temps {
		if *steps == 1 {
			temps[i] = *tempMin
		} else {
			temps[i] = *tempMin + float64(i)*(*tempMax-*tempMin)/float64(*steps-1)
		}
	}

	// One job per grid point and seed
	jobs := make([]job, 0, *steps**seeds)
	for _, t := range temps {
		for s := 0; s < *seeds; s++ {
			jobs = append(jobs, job{temperature: t, seed: int64(s*1000 + 42)})
		}
	}

	fmt.Printf("Sweeping %d temperatures x %d seeds (%d runs, %d ticks each) on %d workers\n",
		*steps, *seeds, len(jobs), *maxTicks, *workers)

	jobCh := make(chan job)
	resultCh := make(chan runResult)

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				resultCh <- runMelt(j.temperature, j.seed, *maxTicks, *statsWindow)
			}
		}()
	}

	go func() {
		for _, j := range jobs {
			jobCh <- j
		}
		close(jobCh)
	}()
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Collect with progress and timing
	startTime := time.Now()
	results := make([]runResult, 0, len(jobs))
	for r := range resultCh {
		results = append(results, r)

		elapsed := time.Since(startTime)
		avgPerRun := elapsed / time.Duration(len(results))
		remaining := time.Duration(len(jobs)-len(results)) * avgPerRun

		fmt.Printf("Run %d/%d: temp=%.2f seed=%d droplets=%.0f shelf=%s | elapsed: %s, ETA: %s\n",
			len(results), len(jobs), r.temperature, r.seed, r.meanDroplets,
			shelfLabel(r.depletedAt), formatDuration(elapsed), formatDuration(remaining))
	}

	summaries := summarize(temps, results)

	fmt.Println("\nTemperature sweep:")
	fmt.Println("  temp   droplets (std)   peak   reject   melted through")
	for _, s := range summaries {
		melted := fmt.Sprintf("%d/%d", s.depleted, *seeds)
		if s.depleted > 0 {
			melted += fmt.Sprintf(" @ %.0fs", s.meanDepleteAt)
		}
		fmt.Printf("  %.2f   %6.1f (%5.1f)   %4d   %5.1f%%   %s\n",
			s.temperature, s.meanDroplets, s.stdDroplets, s.peakDroplets, s.rejectRate*100, melted)
	}

	// Plot mean droplets across the grid
	if len(summaries) >= 2 {
		series := make([]float64, len(summaries))
		for i, s := range summaries {
			series[i] = s.meanDroplets
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("mean droplets, temperature %.2f to %.2f", temps[0], temps[len(temps)-1])),
		))
	}

	if *outputDir != "" {
		path, err := writeCSV(*outputDir, results)
		if err != nil {
			log.Fatalf("failed to write sweep results: %v", err)
		}
		fmt.Printf("\nResults saved to: %s\n", path)
	}

	fmt.Printf("\nSweep complete: %d runs in %s\n", len(results), formatDuration(time.Since(startTime)))
}

// shelfLabel renders a melt-through time, or "held" when the shelf survived.
func shelfLabel(depletedAt float64) string {
	if depletedAt < 0 {
		return "held"
	}
	return fmt.Sprintf("melted@%.0fs", depletedAt)
}
