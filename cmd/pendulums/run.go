package main

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulums/internal/analysis"
	"github.com/san-kum/pendulums/internal/metrics"
	"github.com/san-kum/pendulums/internal/pendulum"
	"github.com/san-kum/pendulums/internal/sim"
	"github.com/san-kum/pendulums/internal/storage"
	"github.com/spf13/cobra"
)

// tipRecorder keeps the horizontal tip position of the first live pendulum.
type tipRecorder struct {
	xs []float64
}

func (r *tipRecorder) OnTick(_ float64, reg *sim.Registry) {
	first := true
	reg.ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
		if first {
			r.xs = append(r.xs, p.Tip().X)
			first = false
		}
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("pendulums") || cfg.Spawn.Initial == 0 {
		cfg.Spawn.Initial = pendulums
	}
	if cmd.Flags().Changed("damping") {
		cfg.Toggles.Damping = damping
	}
	if duration <= 0 {
		return fmt.Errorf("invalid duration: %v", duration)
	}

	tracker := metrics.NewTracker(cfg.Physics.Gravity, 0)
	tips := &tipRecorder{}
	s, err := newSimulation(cfg, sim.WithObserver(tracker), sim.WithObserver(tips))
	if err != nil {
		return err
	}

	// starting states, kept for the divergence estimate
	var initial []*pendulum.DoublePendulum
	s.Registry().ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
		initial = append(initial, p.Clone())
	})

	step := cfg.StepDuration()
	frames := int(duration / cfg.Physics.Dt)

	fmt.Printf("running %d pendulum(s) for %.2fs...\n", s.Registry().Len(), duration)
	start := time.Now()

	var steps, degenerate int
	for i := 0; i < frames; i++ {
		stats := s.Frame(step)
		steps += stats.Steps
		degenerate += stats.Degenerate
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", steps)
	if degenerate > 0 {
		fmt.Printf("skipped (degenerate): %d\n", degenerate)
	}

	results := map[string]float64{
		"energy_initial":   tracker.Initial(),
		"energy_final":     tracker.Current(),
		"energy_max_drift": tracker.MaxDrift(),
		"steps":            float64(steps),
		"degenerate":       float64(degenerate),
	}
	if len(initial) > 0 {
		lambdas, err := analysis.LyapunovEnsemble(cmd.Context(), initial, s.Params(), s.Toggles().Damping, cfg.Physics.Dt, duration, 1e-8)
		if err != nil {
			slog.Warn("run: lyapunov estimate failed", "err", err)
		} else {
			sum, hi := 0.0, math.Inf(-1)
			for _, l := range lambdas {
				sum += l
				hi = math.Max(hi, l)
			}
			results["lyapunov_mean"] = sum / float64(len(lambdas))
			results["lyapunov_max"] = hi
		}
		freq, _ := analysis.DominantFrequency(tips.xs, 1/cfg.Physics.Dt)
		results["tip_x_freq"] = freq
	}

	fmt.Println("\nmetrics:")
	for _, name := range []string{"energy_initial", "energy_final", "energy_max_drift", "lyapunov_mean", "lyapunov_max", "tip_x_freq"} {
		if _, ok := results[name]; !ok {
			continue
		}
		fmt.Printf("  %s: %.6f\n", name, results[name])
	}
	fmt.Println()

	if hist := tracker.History(); len(hist) > 1 {
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		))
		fmt.Println()
	}
	if len(tips.xs) > 1 {
		fmt.Println(asciigraph.Plot(tips.xs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("tip x (first pendulum)"),
		))
		fmt.Println()
	}

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	var trails []storage.Trail
	var colors []string
	s.Registry().ForEach(func(_ sim.Handle, p *pendulum.DoublePendulum) {
		hex := p.Traits.Color.Hex()
		colors = append(colors, hex)
		trails = append(trails, storage.Trail{Color: hex, Points: p.Trail.Points()})
	})

	runID, err := st.Save(storage.RunMetadata{
		Preset:             preset,
		Seed:               seed,
		Dt:                 cfg.Physics.Dt,
		Duration:           duration,
		Pendulums:          s.Registry().Len(),
		Damping:            s.Toggles().Damping,
		LegacyOuterDamping: cfg.Physics.LegacyOuterDamping,
		Colors:             colors,
		Metrics:            results,
	}, trails)
	if err != nil {
		return err
	}
	slog.Info("run: saved", "id", runID, "dir", dataDir)
	fmt.Printf("run id: %s\n", runID)
	return nil
}
