package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Trail.Capacity != 100 {
		t.Errorf("expected trail capacity 100, got %d", cfg.Trail.Capacity)
	}
	if cfg.Spawn.Batch != 10 {
		t.Errorf("expected batch 10, got %d", cfg.Spawn.Batch)
	}
	if !cfg.Toggles.DrawTrails || cfg.Toggles.DrawPendulums || cfg.Toggles.Damping {
		t.Errorf("unexpected default toggles %+v", cfg.Toggles)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StepDuration() != 15625*time.Microsecond {
		t.Errorf("expected 15.625ms step, got %v", cfg.StepDuration())
	}
	if cfg.TrailPeriod() != 60*time.Millisecond {
		t.Errorf("expected 60ms trail period, got %v", cfg.TrailPeriod())
	}
	if cfg.MaxFrameDelta() != 250*time.Millisecond {
		t.Errorf("expected 250ms max frame delta, got %v", cfg.MaxFrameDelta())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Physics.Dt = 0 }},
		{"sub-nanosecond dt", func(c *Config) { c.Physics.Dt = 1e-10 }},
		{"sub-nanosecond max frame delta", func(c *Config) { c.Physics.MaxFrameDelta = 1e-10 }},
		{"sub-nanosecond trail period", func(c *Config) { c.Trail.Period = 4e-10 }},
		{"overflowing dt", func(c *Config) { c.Physics.Dt = 1e12 }},
		{"negative length", func(c *Config) { c.Physics.InnerLength = -1 }},
		{"zero outer length", func(c *Config) { c.Physics.OuterLength = 0 }},
		{"zero mass", func(c *Config) { c.Physics.Mass = 0 }},
		{"negative damping", func(c *Config) { c.Physics.Damping = -0.1 }},
		{"zero trail period", func(c *Config) { c.Trail.Period = 0 }},
		{"zero trail capacity", func(c *Config) { c.Trail.Capacity = 0 }},
		{"negative batch", func(c *Config) { c.Spawn.Batch = -1 }},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("physics:\n  gravity: 1.62\ntoggles:\n  draw_trails: false\n  damping: true\nspawn:\n  initial: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Physics.Gravity != 1.62 {
		t.Errorf("expected gravity 1.62, got %f", cfg.Physics.Gravity)
	}
	if cfg.Toggles.DrawTrails || !cfg.Toggles.Damping {
		t.Errorf("toggles not loaded: %+v", cfg.Toggles)
	}
	if cfg.Spawn.Initial != 3 {
		t.Errorf("expected 3 initial pendulums, got %d", cfg.Spawn.Initial)
	}
	if cfg.Physics.Dt != DefaultDt {
		t.Errorf("expected default dt to survive, got %f", cfg.Physics.Dt)
	}
}

func TestLoadIntoKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 3.7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInto(path, GetPreset("swarm"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Physics.Gravity != 3.7 {
		t.Errorf("expected gravity 3.7 from file, got %f", cfg.Physics.Gravity)
	}
	if cfg.Spawn.Initial != 50 || cfg.Spawn.Batch != 25 {
		t.Errorf("preset spawn settings lost: %+v", cfg.Spawn)
	}
	if cfg.Trail.Capacity != 60 {
		t.Errorf("expected preset trail capacity 60, got %d", cfg.Trail.Capacity)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	os.WriteFile(path, []byte("physics:\n  inner_length: 0\n"), 0644)

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("chaos")
	cfg.Spawn.Seed = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Toggles.Damping {
		t.Error("calm preset should enable damping")
	}

	cfg.Spawn.Initial = 99
	if GetPreset("calm").Spawn.Initial == 99 {
		t.Error("preset shared between callers")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestResolveLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 3.7\ntrail:\n  capacity: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		preset   string
		path     string
		initial  int
		capacity int
		gravity  float64
	}{
		{"defaults", "", "", 0, 100, 9.8},
		{"preset only", "swarm", "", 50, 60, 9.8},
		{"file only", "", path, 0, 80, 3.7},
		{"file over preset", "swarm", path, 50, 80, 3.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.preset, tt.path)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if cfg.Spawn.Initial != tt.initial {
				t.Errorf("spawn.initial = %d, want %d", cfg.Spawn.Initial, tt.initial)
			}
			if cfg.Trail.Capacity != tt.capacity {
				t.Errorf("trail.capacity = %d, want %d", cfg.Trail.Capacity, tt.capacity)
			}
			if cfg.Physics.Gravity != tt.gravity {
				t.Errorf("physics.gravity = %v, want %v", cfg.Physics.Gravity, tt.gravity)
			}
		})
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	if _, err := Resolve("nope", ""); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
