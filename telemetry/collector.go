package telemetry

// Collector accumulates droplet events within time windows and produces
// WindowStats.
type Collector struct {
	windowDuration float64

	// Current window tracking
	windowStart float64

	// Event counters for current window
	frames   int
	spawned  int
	rejected int
	pruned   int
	bursts   int
}

// NewCollector creates a new stats collector.
// windowDuration: how long each stats window lasts in simulation seconds
func NewCollector(windowDuration float64) *Collector {
	if windowDuration <= 0 {
		windowDuration = 5
	}
	return &Collector{windowDuration: windowDuration}
}

// RecordFrame counts one advanced frame.
func (c *Collector) RecordFrame() {
	c.frames++
}

// RecordSpawned counts droplets created by melt bursts.
func (c *Collector) RecordSpawned(n int) {
	c.spawned += n
}

// RecordRejected counts spawn attempts refused at the droplet cap.
func (c *Collector) RecordRejected(n int) {
	c.rejected += n
}

// RecordPruned counts droplets reclaimed by the out-of-bounds sweep.
func (c *Collector) RecordPruned(n int) {
	c.pruned += n
}

// RecordBurst counts one non-empty melt burst.
func (c *Collector) RecordBurst() {
	c.bursts++
}

// ShouldFlush returns true if the current window is over at simTime.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStart >= c.windowDuration
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the state sampled at the window boundary:
// - droplets: current droplet count
// - temperature: last accepted temperature
// - shelfScaleX, shelfAlpha: shelf melt progress
// - gravityX, gravityY: smoothed gravity
// - speeds: droplet speeds for the distribution stats
func (c *Collector) Flush(
	simTime float64,
	droplets int,
	temperature float64,
	shelfScaleX, shelfAlpha float64,
	gravityX, gravityY float64,
	speeds []float64,
) WindowStats {
	// Calculate rates
	var rejectRate float64
	if attempts := c.spawned + c.rejected; attempts > 0 {
		rejectRate = float64(c.rejected) / float64(attempts)
	}
	var spawnRate float64
	if elapsed := simTime - c.windowStart; elapsed > 0 {
		spawnRate = float64(c.spawned) / elapsed
	}

	speedMean, speedP50, speedP90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   simTime,
		Frames:      c.frames,

		Droplets:    droplets,
		Temperature: temperature,
		ShelfScaleX: shelfScaleX,
		ShelfAlpha:  shelfAlpha,

		Spawned:    c.spawned,
		Rejected:   c.rejected,
		Pruned:     c.pruned,
		Bursts:     c.bursts,
		SpawnRate:  spawnRate,
		RejectRate: rejectRate,

		SpeedMean: speedMean,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		GravityX: gravityX,
		GravityY: gravityY,
	}

	// Reset for next window
	c.windowStart = simTime
	c.frames = 0
	c.spawned = 0
	c.rejected = 0
	c.pruned = 0
	c.bursts = 0

	return stats
}

// Reset discards the current window and restarts it at simTime. Used when
// the clock jumps, such as after restoring a snapshot.
func (c *Collector) Reset(simTime float64) {
	c.windowStart = simTime
	c.frames = 0
	c.spawned = 0
	c.rejected = 0
	c.pruned = 0
	c.bursts = 0
}

// WindowDuration returns the window length in simulation seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDuration
}
