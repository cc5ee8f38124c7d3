package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkMeltSurge     BookmarkType = "melt_surge"
	BookmarkPoolSaturated BookmarkType = "pool_saturated"
	BookmarkShelfSliver   BookmarkType = "shelf_sliver"
	BookmarkSettledPool   BookmarkType = "settled_pool"
)

// Bookmark represents an automatically triggered bookmark. It lands in
// bookmarks.csv and inside any snapshot it triggered.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	SimTime     float64      `csv:"sim_time" json:"sim_time"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"sim_time", b.SimTime,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the melt from the window
// stats stream.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	sawRejection   bool // latch: one bookmark per saturation episode
	sliverSeen     bool // latch: one bookmark per melt-through
	settledWindows int  // consecutive windows with a calm, unfed pool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for settled pool detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Melt surge: spawn rate > 2x rolling average
		if b := bd.checkMeltSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Pool saturated: first rejections at the droplet cap
		if b := bd.checkPoolSaturated(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Shelf sliver: melt progressed past the last tenth of the shelf
		if b := bd.checkShelfSliver(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Settled pool: droplets present, no melting, stable speeds over 5+ windows
		if b := bd.checkSettledPool(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkMeltSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Calculate rolling average spawn rate
	var totalRate float64
	for _, h := range history {
		totalRate += h.SpawnRate
	}
	avgRate := totalRate / float64(len(history))
	if avgRate == 0 {
		return nil
	}

	if stats.SpawnRate > avgRate*2.0 && stats.Spawned >= 20 {
		return &Bookmark{
			Type:        BookmarkMeltSurge,
			SimTime:     stats.WindowEnd,
			Description: fmt.Sprintf("Spawn rate %.1f/s is %.1fx average (%.1f/s)", stats.SpawnRate, stats.SpawnRate/avgRate, avgRate),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPoolSaturated(stats WindowStats) *Bookmark {
	if stats.Rejected == 0 {
		// A rejection-free window re-arms the latch
		bd.sawRejection = false
		return nil
	}
	if bd.sawRejection {
		return nil
	}
	bd.sawRejection = true

	return &Bookmark{
		Type:        BookmarkPoolSaturated,
		SimTime:     stats.WindowEnd,
		Description: fmt.Sprintf("Droplet cap reached: %d spawns rejected with %d droplets live", stats.Rejected, stats.Droplets),
	}
}

func (bd *BookmarkDetector) checkShelfSliver(stats WindowStats) *Bookmark {
	// A near-full shelf re-arms the latch (scene reset)
	if stats.ShelfScaleX > 0.5 {
		bd.sliverSeen = false
		return nil
	}
	if bd.sliverSeen || stats.ShelfScaleX > 0.1 {
		return nil
	}
	bd.sliverSeen = true

	return &Bookmark{
		Type:        BookmarkShelfSliver,
		SimTime:     stats.WindowEnd,
		Description: fmt.Sprintf("Shelf down to %.0f%% at temperature %.1f", stats.ShelfScaleX*100, stats.Temperature),
	}
}

func (bd *BookmarkDetector) checkSettledPool(stats WindowStats) *Bookmark {
	// Need a pool worth watching, with no fresh droplets arriving
	if stats.Droplets < 50 || stats.Spawned > 0 {
		bd.settledWindows = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	// Check speed variance in recent windows
	var sum float64
	for _, h := range history[len(history)-4:] {
		sum += h.SpeedMean
	}
	mean := sum / 4

	var variance float64
	for _, h := range history[len(history)-4:] {
		diff := h.SpeedMean - mean
		variance += diff * diff
	}
	variance /= 4

	// Low variance: coefficient of variation < 20%
	cv := 0.0
	if mean > 0 {
		cv = variance / (mean * mean)
	}

	if cv < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.settledWindows++
	} else {
		bd.settledWindows = 0
	}

	if bd.settledWindows == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSettledPool,
			SimTime:     stats.WindowEnd,
			Description: fmt.Sprintf("Pool settled with %d droplets, mean speed %.1f over 5+ windows", stats.Droplets, stats.SpeedMean),
		}
	}

	return nil
}
