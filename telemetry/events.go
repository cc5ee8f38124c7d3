// Package telemetry provides melt observability: windowed stats, frame
// timing, bookmarks, event logs, and scene snapshots.
package telemetry

// EventType identifies telemetry events.
type EventType string

const (
	EventMeltStart    EventType = "melt_start"
	EventCriticalMelt EventType = "critical_melt"
	EventDepleted     EventType = "shelf_depleted"
	EventReset        EventType = "scene_reset"
)

// Event represents a single melt lifecycle transition at its exact frame.
// The windowed stats aggregate steady activity; the event log keeps the
// timing of the transitions between states.
type Event struct {
	Type    EventType `csv:"type"`
	Tick    int32     `csv:"tick"`
	SimTime float64   `csv:"sim_time"`

	// Amount depends on the event type: droplets spawned for a melt start,
	// temperature for a critical crossing, live droplets at depletion, zero
	// for a reset.
	Amount float64 `csv:"amount"`
}

// NewMeltStartEvent creates an event for the first burst of a melt episode.
func NewMeltStartEvent(tick int32, simTime float64, spawned int) Event {
	return Event{
		Type:    EventMeltStart,
		Tick:    tick,
		SimTime: simTime,
		Amount:  float64(spawned),
	}
}

// NewCriticalMeltEvent creates an event for a crossing into runaway melt.
func NewCriticalMeltEvent(tick int32, simTime float64, temperature float64) Event {
	return Event{
		Type:    EventCriticalMelt,
		Tick:    tick,
		SimTime: simTime,
		Amount:  temperature,
	}
}

// NewDepletedEvent creates an event for the shelf melting through.
func NewDepletedEvent(tick int32, simTime float64, droplets int) Event {
	return Event{
		Type:    EventDepleted,
		Tick:    tick,
		SimTime: simTime,
		Amount:  float64(droplets),
	}
}

// NewResetEvent creates an event for a scene reset.
func NewResetEvent(tick int32, simTime float64) Event {
	return Event{
		Type:    EventReset,
		Tick:    tick,
		SimTime: simTime,
	}
}
