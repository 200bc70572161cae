package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]func() *Config{
	// one slowly decaying pendulum
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.Spawn.Initial = 1
		cfg.Toggles.DrawPendulums = true
		cfg.Toggles.Damping = true
		return cfg
	},
	"chaos": func() *Config {
		cfg := DefaultConfig()
		cfg.Spawn.Initial = 10
		cfg.Toggles.DrawPendulums = true
		return cfg
	},
	"swarm": func() *Config {
		cfg := DefaultConfig()
		cfg.Spawn.Initial = 50
		cfg.Spawn.Batch = 25
		cfg.Trail.Capacity = 60
		return cfg
	},
	// matches the behaviour of the first release, including the outer damping term
	"legacy": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.LegacyOuterDamping = true
		cfg.Render.Scale = 20
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve layers the defaults, the named preset and the yaml file at path,
// each overriding the one before. Empty preset or path skips that layer.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, preset, ListPresets())
		}
	}
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	cfg, err := LoadInto(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
