package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/KIM3310/ecotide/physics"
)

func freshShelf() *Shelf {
	return &Shelf{
		Pos:    physics.Vec2{X: 480, Y: 460},
		Width:  320,
		Height: 90,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
	}
}

func TestClampTemperature(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below range", 0.5, 1.0},
		{"at min", 1.0, 1.0},
		{"inside", 3.3, 3.3},
		{"at max", 5.0, 5.0},
		{"above range", 9.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTemperature(tt.in); got != tt.want {
				t.Errorf("ClampTemperature(%g) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeltRatio(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"stable ice", 1.0, 1.0},
		{"warm", 2.0, 0.75},
		{"midpoint", 3.0, 0.5},
		{"near max", 4.96, 0.01},
		{"max clamps to floor", 5.0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeltRatio(tt.temp); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MeltRatio(%g) = %g, want %g", tt.temp, got, tt.want)
			}
		})
	}
}

func TestSpawnInterval(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"coldest", 1.0, 0.1},
		{"onset", 1.5, 0.0875},
		{"midpoint", 3.0, 0.05},
		{"max hits floor", 5.0, 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpawnInterval(tt.temp); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SpawnInterval(%g) = %g, want %g", tt.temp, got, tt.want)
			}
		})
	}
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want int
	}{
		{"onset", 1.5, 1},
		{"midpoint", 3.0, 3},
		{"hot", 4.2, 5},
		{"max", 5.0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BatchSize(tt.temp); got != tt.want {
				t.Errorf("BatchSize(%g) = %d, want %d", tt.temp, got, tt.want)
			}
		})
	}
}

func TestMeltIgnoresTemperatureAtOrBelowOnset(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(1)))

	m.OnTemperatureChanged(1.5)
	m.Step(1.0)

	if shelf.ScaleX != 1 || shelf.ScaleY != 1 || shelf.Alpha != 1 {
		t.Errorf("shelf changed at the onset temperature: %+v", *shelf)
	}
	if m.Shrinking() {
		t.Error("no transition should run at the onset temperature")
	}
}

func TestShrinkIsGradual(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(1)))

	m.OnTemperatureChanged(3.0) // demands scale 0.5
	m.Step(0.15)                // halfway through the transition

	if math.Abs(shelf.ScaleX-0.75) > 1e-9 {
		t.Errorf("ScaleX halfway = %g, want 0.75", shelf.ScaleX)
	}
	if !m.Shrinking() {
		t.Error("transition should still be running")
	}
}

func TestShrinkRespectsVisibilityFloors(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(1)))

	m.OnTemperatureChanged(5.0)
	for i := 0; i < 60; i++ {
		m.Step(1.0 / 60.0)
	}

	if math.Abs(shelf.ScaleX-0.01) > 1e-9 {
		t.Errorf("ScaleX = %g, want 0.01", shelf.ScaleX)
	}
	if math.Abs(shelf.ScaleY-0.4) > 1e-9 {
		t.Errorf("ScaleY = %g, want floor 0.4", shelf.ScaleY)
	}
	if math.Abs(shelf.Alpha-0.3) > 1e-9 {
		t.Errorf("Alpha = %g, want floor 0.3", shelf.Alpha)
	}
	if m.Shrinking() {
		t.Error("transitions should be complete")
	}
}

func TestShelfNeverRegrows(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(1)))

	m.OnTemperatureChanged(4.0) // demands scale 0.25
	for i := 0; i < 30; i++ {
		m.Step(1.0 / 60.0)
	}
	shrunk := shelf.ScaleX

	m.OnTemperatureChanged(2.0) // cooler would demand 0.75
	for i := 0; i < 30; i++ {
		m.Step(1.0 / 60.0)
	}

	if shelf.ScaleX > shrunk+1e-9 {
		t.Errorf("ScaleX grew from %g to %g after cooling", shrunk, shelf.ScaleX)
	}
}

func TestSpawnBatchScattersUnderShelf(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(7)))

	batch := m.SpawnBatch(5.0)

	if len(batch) != 6 {
		t.Fatalf("batch size = %d, want 6", len(batch))
	}
	for i, pos := range batch {
		if math.Abs(pos.X-shelf.Pos.X) > 100 {
			t.Errorf("droplet %d at X=%g, want within 100 of the shelf center", i, pos.X)
		}
		if pos.Y != shelf.Pos.Y-70 {
			t.Errorf("droplet %d at Y=%g, want %g", i, pos.Y, shelf.Pos.Y-70)
		}
	}
}

func TestSpawnBatchNarrowsAsShelfShrinks(t *testing.T) {
	shelf := freshShelf()
	shelf.ScaleX = 0.2
	m := NewMeltController(shelf, rand.New(rand.NewSource(7)))

	for i, pos := range m.SpawnBatch(5.0) {
		if math.Abs(pos.X-shelf.Pos.X) > 100*0.2 {
			t.Errorf("droplet %d at X=%g, outside the shrunken scatter", i, pos.X)
		}
	}
}

func TestSpawnBatchStopsWhenDepleted(t *testing.T) {
	shelf := freshShelf()
	shelf.ScaleX = 0.05
	m := NewMeltController(shelf, rand.New(rand.NewSource(7)))

	if !m.Depleted() {
		t.Fatal("shelf at the cutoff scale should be depleted")
	}
	if batch := m.SpawnBatch(5.0); batch != nil {
		t.Errorf("depleted shelf produced %d droplets", len(batch))
	}
}

func TestResetRestoresShelf(t *testing.T) {
	shelf := freshShelf()
	m := NewMeltController(shelf, rand.New(rand.NewSource(1)))

	m.OnTemperatureChanged(5.0)
	m.Step(0.1)
	m.Reset()

	if shelf.ScaleX != 1 || shelf.ScaleY != 1 || shelf.Alpha != 1 {
		t.Errorf("shelf after reset: %+v, want intact", *shelf)
	}
	if m.Shrinking() {
		t.Error("reset should cancel running transitions")
	}
	if m.Depleted() {
		t.Error("reset shelf should not be depleted")
	}
}
