package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Frames      int     `csv:"frames"`

	// Scene state at window end
	Droplets    int     `csv:"droplets"`
	Temperature float64 `csv:"temperature"`
	ShelfScaleX float64 `csv:"shelf_scale_x"`
	ShelfAlpha  float64 `csv:"shelf_alpha"`

	// Events during window
	Spawned    int     `csv:"spawned"`
	Rejected   int     `csv:"rejected"`
	Pruned     int     `csv:"pruned"`
	Bursts     int     `csv:"bursts"`
	SpawnRate  float64 `csv:"spawn_rate"`
	RejectRate float64 `csv:"reject_rate"`

	// Droplet speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Smoothed gravity at window end
	GravityX float64 `csv:"gravity_x"`
	GravityY float64 `csv:"gravity_y"`
}

// ComputeSpeedStats calculates mean and percentiles from speed values.
func ComputeSpeedStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	// Quantile needs sorted input
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("droplets", s.Droplets),
		slog.Float64("temperature", s.Temperature),
		slog.Float64("shelf_scale_x", s.ShelfScaleX),
		slog.Float64("shelf_alpha", s.ShelfAlpha),
		slog.Int("spawned", s.Spawned),
		slog.Int("rejected", s.Rejected),
		slog.Int("pruned", s.Pruned),
		slog.Int("bursts", s.Bursts),
		slog.Float64("spawn_rate", s.SpawnRate),
		slog.Float64("reject_rate", s.RejectRate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("gravity_x", s.GravityX),
		slog.Float64("gravity_y", s.GravityY),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"frames", s.Frames,
		"droplets", s.Droplets,
		"temperature", s.Temperature,
		"shelf_scale_x", s.ShelfScaleX,
		"shelf_alpha", s.ShelfAlpha,
		"spawned", s.Spawned,
		"rejected", s.Rejected,
		"pruned", s.Pruned,
		"bursts", s.Bursts,
		"spawn_rate", s.SpawnRate,
		"reject_rate", s.RejectRate,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"gravity_x", s.GravityX,
		"gravity_y", s.GravityY,
	)
}
