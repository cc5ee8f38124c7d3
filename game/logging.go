package game

import (
	"log/slog"

	"github.com/KIM3310/ecotide/sim"
	"github.com/KIM3310/ecotide/telemetry"
)

// logMeltEvents emits one-shot events as the melt crosses thresholds. The
// critical warning re-arms when the temperature falls back below the line;
// the depletion notice re-arms only on reset. Each crossing also lands in
// the event log with its exact frame.
func (g *Game) logMeltEvents() {
	temp := g.engine.Temperature()

	if temp > sim.CriticalTemperature {
		if !g.warnedCritical {
			g.warnedCritical = true
			slog.Warn("critical_melt",
				"temperature", temp,
				"shelf_scale_x", g.engine.Shelf().ScaleX,
				"tick", g.tick,
			)
			g.writeEvent(telemetry.NewCriticalMeltEvent(g.tick, g.simTime, temp))
		}
	} else {
		g.warnedCritical = false
	}

	if g.engine.Depleted() && !g.loggedDepleted {
		g.loggedDepleted = true
		slog.Info("shelf_depleted",
			"tick", g.tick,
			"sim_time", g.simTime,
			"droplets", g.engine.DropletCount(),
		)
		g.writeEvent(telemetry.NewDepletedEvent(g.tick, g.simTime, g.engine.DropletCount()))
	}
}

// writeEvent appends one row to the event log when output is enabled.
func (g *Game) writeEvent(e telemetry.Event) {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}
