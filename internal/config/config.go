package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/pendulums/internal/pendulum"
	"github.com/san-kum/pendulums/internal/trail"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 1.0 / 64
	DefaultMaxFrameDelta = 0.25
	DefaultTrailPeriod   = 0.06
	DefaultBatch         = 10
	DefaultScale         = 20.0
	DefaultFPS           = 60
	DefaultWidth         = 1280
	DefaultHeight        = 720
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Trail   TrailConfig   `yaml:"trail"`
	Toggles TogglesConfig `yaml:"toggles"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Render  RenderConfig  `yaml:"render"`
}

type PhysicsConfig struct {
	Dt                 float64 `yaml:"dt"`
	Gravity            float64 `yaml:"gravity"`
	Mass               float64 `yaml:"mass"`
	InnerLength        float64 `yaml:"inner_length"`
	OuterLength        float64 `yaml:"outer_length"`
	Damping            float64 `yaml:"damping"`
	LegacyOuterDamping bool    `yaml:"legacy_outer_damping"`
	MaxFrameDelta      float64 `yaml:"max_frame_delta"`
}

type TrailConfig struct {
	Period   float64 `yaml:"period"`
	Capacity int     `yaml:"capacity"`
}

type TogglesConfig struct {
	DrawTrails    bool `yaml:"draw_trails"`
	DrawPendulums bool `yaml:"draw_pendulums"`
	Damping       bool `yaml:"damping"`
}

type SpawnConfig struct {
	Initial int   `yaml:"initial"`
	Batch   int   `yaml:"batch"`
	Seed    int64 `yaml:"seed"`
}

type RenderConfig struct {
	Scale  float64 `yaml:"scale"`
	FPS    int     `yaml:"fps"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Dt:            DefaultDt,
			Gravity:       pendulum.DefaultGravity,
			Mass:          pendulum.DefaultMass,
			InnerLength:   pendulum.DefaultLength,
			OuterLength:   pendulum.DefaultLength,
			Damping:       pendulum.DefaultDamping,
			MaxFrameDelta: DefaultMaxFrameDelta,
		},
		Trail: TrailConfig{
			Period:   DefaultTrailPeriod,
			Capacity: trail.DefaultCapacity,
		},
		Toggles: TogglesConfig{
			DrawTrails: true,
		},
		Spawn: SpawnConfig{
			Batch: DefaultBatch,
		},
		Render: RenderConfig{
			Scale:  DefaultScale,
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a yaml file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a yaml file on top of base, so keys missing from the file
// keep base's values. base is modified and returned.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"physics.dt", duration(c.Physics.Dt)},
		{"physics.gravity", !math.IsNaN(c.Physics.Gravity) && !math.IsInf(c.Physics.Gravity, 0)},
		{"physics.mass", positive(c.Physics.Mass)},
		{"physics.inner_length", positive(c.Physics.InnerLength)},
		{"physics.outer_length", positive(c.Physics.OuterLength)},
		{"physics.damping", c.Physics.Damping >= 0},
		{"physics.max_frame_delta", duration(c.Physics.MaxFrameDelta)},
		{"trail.period", duration(c.Trail.Period)},
		{"trail.capacity", c.Trail.Capacity > 0},
		{"spawn.initial", c.Spawn.Initial >= 0},
		{"spawn.batch", c.Spawn.Batch >= 0},
		{"render.scale", positive(c.Render.Scale)},
		{"render.fps", c.Render.FPS > 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}

// PendulumSpec returns the template every spawned pendulum is built from.
func (c *Config) PendulumSpec() pendulum.Spec {
	return pendulum.Spec{
		InnerLength:   c.Physics.InnerLength,
		OuterLength:   c.Physics.OuterLength,
		Mass:          c.Physics.Mass,
		TrailCapacity: c.Trail.Capacity,
	}
}

func (c *Config) Params() pendulum.Params {
	return pendulum.Params{
		Gravity:            c.Physics.Gravity,
		Damping:            c.Physics.Damping,
		LegacyOuterDamping: c.Physics.LegacyOuterDamping,
	}
}

func (c *Config) StepDuration() time.Duration  { return seconds(c.Physics.Dt) }
func (c *Config) TrailPeriod() time.Duration   { return seconds(c.Trail.Period) }
func (c *Config) MaxFrameDelta() time.Duration { return seconds(c.Physics.MaxFrameDelta) }

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// duration reports whether v seconds is a positive whole number of
// nanoseconds once rounded.
func duration(v float64) bool {
	return positive(v) && v < math.MaxInt64/float64(time.Second) && seconds(v) > 0
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
