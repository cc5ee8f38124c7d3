package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Screen.Width != 960 {
		t.Errorf("Screen.Width: got %d, want 960", cfg.Screen.Width)
	}
	if cfg.Screen.Height != 700 {
		t.Errorf("Screen.Height: got %d, want 700", cfg.Screen.Height)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("Screen.TargetFPS: got %d, want 60", cfg.Screen.TargetFPS)
	}
	if cfg.Simulation.StartTemperature != 1.0 {
		t.Errorf("StartTemperature: got %v, want 1.0", cfg.Simulation.StartTemperature)
	}
	if cfg.Controls.TiltMax != 0.6 {
		t.Errorf("TiltMax: got %v, want 0.6", cfg.Controls.TiltMax)
	}
	if cfg.Controls.KeyTiltRate != 1.2 {
		t.Errorf("KeyTiltRate: got %v, want 1.2", cfg.Controls.KeyTiltRate)
	}
	if cfg.Controls.KeyTemperatureRate != 2.0 {
		t.Errorf("KeyTemperatureRate: got %v, want 2.0", cfg.Controls.KeyTemperatureRate)
	}
	if cfg.Telemetry.StatsWindow != 5.0 {
		t.Errorf("StatsWindow: got %v, want 5.0", cfg.Telemetry.StatsWindow)
	}
	if cfg.Telemetry.PerfCollectorWindow != 60 {
		t.Errorf("PerfCollectorWindow: got %d, want 60", cfg.Telemetry.PerfCollectorWindow)
	}
	if cfg.Derived.ScreenW32 != 960 {
		t.Errorf("Derived.ScreenW32: got %v, want 960", cfg.Derived.ScreenW32)
	}
	if cfg.Derived.ScreenH32 != 700 {
		t.Errorf("Derived.ScreenH32: got %v, want 700", cfg.Derived.ScreenH32)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	userYAML := `
screen:
  width: 1280
simulation:
  start_temperature: 3.5
`
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte(userYAML), 0644); err != nil {
		t.Fatalf("writing user config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Overridden fields
	if cfg.Screen.Width != 1280 {
		t.Errorf("Screen.Width: got %d, want 1280", cfg.Screen.Width)
	}
	if cfg.Simulation.StartTemperature != 3.5 {
		t.Errorf("StartTemperature: got %v, want 3.5", cfg.Simulation.StartTemperature)
	}

	// Untouched fields keep their defaults
	if cfg.Screen.Height != 700 {
		t.Errorf("Screen.Height: got %d, want 700", cfg.Screen.Height)
	}
	if cfg.Controls.TiltMax != 0.6 {
		t.Errorf("TiltMax: got %v, want 0.6", cfg.Controls.TiltMax)
	}
	if cfg.Telemetry.StatsWindow != 5.0 {
		t.Errorf("StatsWindow: got %v, want 5.0", cfg.Telemetry.StatsWindow)
	}

	// Derived values track the override
	if cfg.Derived.ScreenW32 != 1280 {
		t.Errorf("Derived.ScreenW32: got %v, want 1280", cfg.Derived.ScreenW32)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestDerivedClampsStartTemperature(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want float64
	}{
		{"above range", "simulation:\n  start_temperature: 9.0\n", 5},
		{"below range", "simulation:\n  start_temperature: 0.2\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "user.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatalf("writing user config: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Simulation.StartTemperature != tc.want {
				t.Errorf("StartTemperature: got %v, want %v", cfg.Simulation.StartTemperature, tc.want)
			}
		})
	}
}

func TestDerivedRestoresZeroedControls(t *testing.T) {
	userYAML := `
controls:
  tilt_max: 0
  key_tilt_rate: -1
`
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte(userYAML), 0644); err != nil {
		t.Fatalf("writing user config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Controls.TiltMax != 0.6 {
		t.Errorf("TiltMax: got %v, want 0.6", cfg.Controls.TiltMax)
	}
	if cfg.Controls.KeyTiltRate != 1.2 {
		t.Errorf("KeyTiltRate: got %v, want 1.2", cfg.Controls.KeyTiltRate)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	cfg.Screen.Width = 800
	cfg.Simulation.StartTemperature = 2.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Screen.Width != 800 {
		t.Errorf("Screen.Width after round trip: got %d, want 800", loaded.Screen.Width)
	}
	if loaded.Simulation.StartTemperature != 2.5 {
		t.Errorf("StartTemperature after round trip: got %v, want 2.5", loaded.Simulation.StartTemperature)
	}
}
