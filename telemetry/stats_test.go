package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
		wantP90  float64
	}{
		{"empty slice", []float64{}, 0, 0, 0},
		{"single element", []float64{7.0}, 7.0, 7.0, 7.0},
		{"one through ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5.5, 5.0, 9.0},
		{"four evens", []float64{2, 4, 6, 8}, 5.0, 4.0, 8.0},
		{"unsorted input", []float64{9, 1, 5, 3, 7, 2, 8, 4, 10, 6}, 5.5, 5.0, 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := ComputeSpeedStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(p50-tt.wantP50) > 0.001 {
				t.Errorf("p50 = %v, want %v", p50, tt.wantP50)
			}
			if math.Abs(p90-tt.wantP90) > 0.001 {
				t.Errorf("p90 = %v, want %v", p90, tt.wantP90)
			}
		})
	}
}

func TestComputeSpeedStatsLeavesInputAlone(t *testing.T) {
	values := []float64{9, 1, 5}

	ComputeSpeedStats(values)

	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input reordered: %v", values)
	}
}
