package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/pendulum"
	"github.com/san-kum/pendulums/internal/trail"
	"golang.org/x/exp/rand"
)

// FrameStats summarises what a single Frame call did.
type FrameStats struct {
	Commands   int
	Steps      int
	Degenerate int
	Sampled    bool
}

type Simulation struct {
	registry *Registry
	toggles  Toggles
	params   pendulum.Params
	batch    int

	dt          time.Duration
	dtSeconds   float64
	maxDelta    time.Duration
	accumulator time.Duration
	elapsed     float64
	timer       *trail.Timer

	observers []Observer
	logger    *slog.Logger

	mu      sync.Mutex
	pending []Command
}

type Option func(*Simulation)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

// New builds a simulation from cfg and spawns the configured initial
// pendulums. rng drives every random choice, so a fixed seed gives a
// reproducible run.
func New(cfg *config.Config, rng *rand.Rand, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StepDuration() <= 0 || cfg.MaxFrameDelta() <= 0 {
		return nil, fmt.Errorf("%w: step and frame delta must be at least 1ns", config.ErrInvalidConfig)
	}
	reg, err := NewRegistry(cfg.PendulumSpec(), rng)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		registry: reg,
		toggles: Toggles{
			DrawTrails:    cfg.Toggles.DrawTrails,
			DrawPendulums: cfg.Toggles.DrawPendulums,
			Damping:       cfg.Toggles.Damping,
		},
		params:    cfg.Params(),
		batch:     cfg.Spawn.Batch,
		dt:        cfg.StepDuration(),
		dtSeconds: cfg.StepDuration().Seconds(),
		maxDelta:  cfg.MaxFrameDelta(),
		timer:     trail.NewTimer(cfg.TrailPeriod()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	reg.SpawnMany(cfg.Spawn.Initial)
	s.logger.Debug("sim: initialised",
		"pendulums", reg.Len(),
		"dt", s.dt,
		"trail_period", s.timer.Period())
	return s, nil
}

func (s *Simulation) Registry() *Registry { return s.registry }
func (s *Simulation) Toggles() Toggles    { return s.toggles }
func (s *Simulation) Params() pendulum.Params {
	return s.params
}

// Time is the simulated time in seconds.
func (s *Simulation) Time() float64 { return s.elapsed }

// Submit queues a command for the next frame. It is safe to call from any
// goroutine.
func (s *Simulation) Submit(cmd Command) {
	s.mu.Lock()
	s.pending = append(s.pending, cmd)
	s.mu.Unlock()
}

// Frame advances the simulation by elapsed real time. Queued commands are
// applied first, then physics runs in fixed steps, then the trail timer
// advances and samples every tip when it fires.
func (s *Simulation) Frame(elapsed time.Duration) FrameStats {
	var stats FrameStats
	stats.Commands = s.drain()

	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > s.maxDelta {
		elapsed = s.maxDelta
	}

	s.accumulator += elapsed
	for s.accumulator >= s.dt {
		stats.Degenerate += s.Tick()
		s.accumulator -= s.dt
		stats.Steps++
	}

	if s.timer.Advance(elapsed) {
		s.SampleTrails()
		stats.Sampled = true
	}
	return stats
}

// Tick advances every pendulum by one fixed step and returns how many steps
// were skipped as degenerate.
func (s *Simulation) Tick() int {
	skipped := 0
	s.registry.ForEach(func(h Handle, p *pendulum.DoublePendulum) {
		err := s.step(h, p)
		if err == nil {
			return
		}
		if errors.Is(err, pendulum.ErrDegenerate) {
			skipped++
			s.logger.Debug("sim: degenerate step skipped", "err", err)
			return
		}
		s.logger.Warn("sim: step failed", "err", err)
	})
	s.elapsed += s.dtSeconds

	for _, o := range s.observers {
		o.OnTick(s.elapsed, s.registry)
	}
	return skipped
}

// step advances one pendulum and tags any *StepError with its handle.
func (s *Simulation) step(h Handle, p *pendulum.DoublePendulum) error {
	err := p.Step(s.dtSeconds, s.toggles.Damping, s.params)
	var se *pendulum.StepError
	if errors.As(err, &se) {
		se.Pendulum = uint64(h)
	}
	return err
}

// SampleTrails appends every pendulum's tip to its trail. Sampling does not
// depend on whether trails are drawn.
func (s *Simulation) SampleTrails() {
	s.registry.ForEach(func(_ Handle, p *pendulum.DoublePendulum) {
		p.SampleTrail()
	})
}

// Render hands the visible geometry to r according to the draw toggles.
func (s *Simulation) Render(r Renderer) {
	s.registry.ForEach(func(_ Handle, p *pendulum.DoublePendulum) {
		c := p.Traits.Color
		if s.toggles.DrawTrails && p.Trail.Len() > 1 {
			r.DrawPath(p.Trail.Points(), c)
		}
		if s.toggles.DrawPendulums {
			r.DrawSegment(p.Inner.Start, p.Inner.End, c)
			r.DrawSegment(p.Outer.Start, p.Outer.End, c)
		}
	})
}

// Energy is the summed mechanical energy of all live pendulums.
func (s *Simulation) Energy() float64 {
	return s.registry.Energy(s.params.Gravity)
}

func (s *Simulation) drain() int {
	s.mu.Lock()
	cmds := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		s.apply(cmd)
	}
	return len(cmds)
}

func (s *Simulation) apply(cmd Command) {
	switch cmd {
	case CmdReset:
		n := s.registry.Len()
		s.registry.ResetAll()
		s.logger.Info("sim: reset", "removed", n)
	case CmdSpawnOne:
		h, _ := s.registry.SpawnOne()
		s.logger.Debug("sim: spawned", "pendulum", h)
	case CmdSpawnMany:
		s.registry.SpawnMany(s.batch)
		s.logger.Debug("sim: spawned batch", "count", s.batch, "total", s.registry.Len())
	case CmdToggleTrails:
		s.toggles.DrawTrails = !s.toggles.DrawTrails
		s.logger.Info("sim: toggle", "draw_trails", s.toggles.DrawTrails)
	case CmdTogglePendulums:
		s.toggles.DrawPendulums = !s.toggles.DrawPendulums
		s.logger.Info("sim: toggle", "draw_pendulums", s.toggles.DrawPendulums)
	case CmdToggleDamping:
		s.toggles.Damping = !s.toggles.Damping
		s.logger.Info("sim: toggle", "damping", s.toggles.Damping)
	default:
		s.logger.Warn("sim: unknown command", "command", int(cmd))
	}
}
