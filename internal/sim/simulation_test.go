package sim_test

import (
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/pendulum"
	"github.com/san-kum/pendulums/internal/sim"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

type recordingRenderer struct {
	segments int
	paths    [][]r2.Vec
}

func (r *recordingRenderer) DrawSegment(start, end r2.Vec, c pendulum.Color) { r.segments++ }
func (r *recordingRenderer) DrawPath(points []r2.Vec, c pendulum.Color) {
	r.paths = append(r.paths, points)
}

type tickCounter struct {
	ticks int
	last  float64
}

func (c *tickCounter) OnTick(t float64, reg *sim.Registry) {
	c.ticks++
	c.last = t
}

var _ = Describe("Simulation", func() {
	var (
		cfg *config.Config
		s   *sim.Simulation
	)

	build := func(opts ...sim.Option) *sim.Simulation {
		opts = append([]sim.Option{sim.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
		sm, err := sim.New(cfg, rand.New(rand.NewSource(11)), opts...)
		Expect(err).NotTo(HaveOccurred())
		return sm
	}

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Spawn.Initial = 1
	})

	It("rejects an invalid configuration", func() {
		cfg.Physics.InnerLength = -1
		_, err := sim.New(cfg, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("rejects a step that rounds to zero", func() {
		cfg.Physics.Dt = 1e-10
		_, err := sim.New(cfg, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("spawns the configured initial pendulums", func() {
		cfg.Spawn.Initial = 4
		s = build()
		Expect(s.Registry().Len()).To(Equal(4))
	})

	Describe("fixed-step accumulator", func() {
		BeforeEach(func() { s = build() })

		It("carries leftover time between frames", func() {
			Expect(s.Frame(10 * time.Millisecond).Steps).To(Equal(0))
			Expect(s.Frame(10 * time.Millisecond).Steps).To(Equal(1))
		})

		It("caps a long frame", func() {
			stats := s.Frame(5 * time.Second)
			Expect(stats.Steps).To(Equal(16))
			Expect(s.Time()).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("ignores negative elapsed time", func() {
			Expect(s.Frame(-time.Second).Steps).To(Equal(0))
		})

		It("notifies observers once per tick", func() {
			counter := &tickCounter{}
			s = build(sim.WithObserver(counter))
			s.Frame(100 * time.Millisecond)
			Expect(counter.ticks).To(Equal(6))
			Expect(counter.last).To(BeNumerically("~", 6.0/64, 1e-12))
		})
	})

	Describe("commands", func() {
		BeforeEach(func() { s = build() })

		It("applies queued commands at the next frame", func() {
			s.Submit(sim.CmdSpawnOne)
			s.Submit(sim.CmdSpawnMany)
			Expect(s.Registry().Len()).To(Equal(1))

			stats := s.Frame(0)
			Expect(stats.Commands).To(Equal(2))
			Expect(s.Registry().Len()).To(Equal(12))
		})

		It("removes every pendulum on reset", func() {
			s.Submit(sim.CmdSpawnMany)
			s.Frame(0)
			Expect(s.Registry().Len()).To(Equal(11))

			s.Submit(sim.CmdReset)
			s.Frame(0)
			count := 0
			s.Registry().ForEach(func(sim.Handle, *pendulum.DoublePendulum) { count++ })
			Expect(count).To(BeZero())
		})

		It("flips each toggle independently", func() {
			before := s.Toggles()
			s.Submit(sim.CmdToggleTrails)
			s.Submit(sim.CmdToggleDamping)
			s.Frame(0)

			after := s.Toggles()
			Expect(after.DrawTrails).To(Equal(!before.DrawTrails))
			Expect(after.Damping).To(Equal(!before.Damping))
			Expect(after.DrawPendulums).To(Equal(before.DrawPendulums))

			s.Submit(sim.CmdTogglePendulums)
			s.Frame(0)
			Expect(s.Toggles().DrawPendulums).To(Equal(!before.DrawPendulums))
		})

		It("accepts commands from other goroutines", func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 5; i++ {
					s.Submit(sim.CmdSpawnOne)
				}
			}()
			Eventually(done).Should(BeClosed())
			s.Frame(0)
			Expect(s.Registry().Len()).To(Equal(6))
		})
	})

	Describe("trails", func() {
		It("keeps the 100 most recent samples", func() {
			s = build()
			var p *pendulum.DoublePendulum
			s.Registry().ForEach(func(_ sim.Handle, dp *pendulum.DoublePendulum) { p = dp })

			samples := make([]r2.Vec, 0, 150)
			for len(samples) < 150 {
				if s.Frame(60 * time.Millisecond).Sampled {
					samples = append(samples, p.Tip())
				}
			}

			pts := p.Trail.Points()
			Expect(pts).To(HaveLen(100))
			Expect(pts[0]).To(Equal(samples[50]))
			Expect(pts[99]).To(Equal(samples[149]))
		})

		It("samples even when trails are hidden", func() {
			cfg.Toggles.DrawTrails = false
			s = build()
			for i := 0; i < 10; i++ {
				s.Frame(60 * time.Millisecond)
			}
			s.Registry().ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
				Expect(p.Trail.Len()).To(Equal(10))
			})
		})
	})

	Describe("rendering", func() {
		It("draws only what the toggles allow", func() {
			cfg.Spawn.Initial = 3
			cfg.Toggles.DrawTrails = true
			cfg.Toggles.DrawPendulums = false
			s = build()
			for i := 0; i < 5; i++ {
				s.Frame(60 * time.Millisecond)
			}

			r := &recordingRenderer{}
			s.Render(r)
			Expect(r.segments).To(BeZero())
			Expect(r.paths).To(HaveLen(3))
			for _, path := range r.paths {
				Expect(path).To(HaveLen(5))
			}

			s.Submit(sim.CmdTogglePendulums)
			s.Submit(sim.CmdToggleTrails)
			s.Frame(0)
			r = &recordingRenderer{}
			s.Render(r)
			Expect(r.segments).To(Equal(6))
			Expect(r.paths).To(BeEmpty())
		})
	})

	It("keeps every chain connected", func() {
		cfg.Spawn.Initial = 10
		s = build()
		for i := 0; i < 200; i++ {
			s.Frame(16 * time.Millisecond)
			s.Registry().ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
				Expect(p.Outer.Start).To(Equal(p.Inner.End))
			})
		}
	})

	It("is reproducible for a fixed seed", func() {
		cfg.Spawn.Initial = 3
		a, b := build(), build()
		for i := 0; i < 100; i++ {
			a.Frame(17 * time.Millisecond)
			b.Frame(17 * time.Millisecond)
		}
		tips := func(sm *sim.Simulation) []r2.Vec {
			var out []r2.Vec
			sm.Registry().ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
				out = append(out, p.Tip())
			})
			return out
		}
		Expect(tips(a)).To(Equal(tips(b)))
	})
})
