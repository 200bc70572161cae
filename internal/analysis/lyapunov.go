package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/pendulums/internal/pendulum"
)

var ErrInvalidArgs = errors.New("analysis: invalid arguments")

// LyapunovExponent estimates the largest Lyapunov exponent of p, in 1/s,
// using the trajectory separation method. p itself is not advanced.
//
// Algorithm:
// 1. Run a copy of p and a second copy with the inner angle offset by perturbation
// 2. Measure their separation in (angle, velocity) space after each step
// 3. Accumulate ln(d/d0) and pull the perturbed copy back to distance d0
// 4. λ ≈ Σ ln(d/d0) / (steps * dt)
func LyapunovExponent(
	p *pendulum.DoublePendulum,
	params pendulum.Params,
	damping bool,
	dt, duration float64,
	perturbation float64,
) (float64, error) {
	if dt <= 0 || duration < dt || perturbation <= 0 {
		return 0, fmt.Errorf("%w: dt=%g duration=%g perturbation=%g", ErrInvalidArgs, dt, duration, perturbation)
	}

	ref := p.Clone()
	pert := p.Clone()
	s := pert.State()
	s.InnerAngle += perturbation
	pert.SetState(s)

	d0 := perturbation
	steps := int(duration / dt)
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		if err := ref.Step(dt, damping, params); err != nil {
			return 0, fmt.Errorf("reference trajectory: %w", err)
		}
		if err := pert.Step(dt, damping, params); err != nil {
			return 0, fmt.Errorf("perturbed trajectory: %w", err)
		}

		a, b := ref.State(), pert.State()
		diff := [4]float64{
			b.InnerAngle - a.InnerAngle,
			b.OuterAngle - a.OuterAngle,
			b.InnerVelocity - a.InnerVelocity,
			b.OuterVelocity - a.OuterVelocity,
		}
		sep := math.Sqrt(diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2] + diff[3]*diff[3])
		if sep == 0 {
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		pert.SetState(pendulum.State{
			InnerAngle:    a.InnerAngle + diff[0]*scale,
			OuterAngle:    a.OuterAngle + diff[1]*scale,
			InnerVelocity: a.InnerVelocity + diff[2]*scale,
			OuterVelocity: a.OuterVelocity + diff[3]*scale,
		})
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
