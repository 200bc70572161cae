package pendulum

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultDamping is the linear damping coefficient applied when damping is on.
const DefaultDamping = 0.1

const minDenominator = 1e-12

// Params are the environment constants shared by all pendulums.
type Params struct {
	Gravity float64
	Damping float64
	// LegacyOuterDamping damps the outer rod with the inner rod's velocity.
	LegacyOuterDamping bool
}

func DefaultParams() Params {
	return Params{Gravity: DefaultGravity, Damping: DefaultDamping}
}

// Accelerations returns the angular accelerations of the inner and outer rods
// for point masses m1 and m2 under gravity g.
func Accelerations(inner, outer Segment, m1, m2, g float64) (alpha1, alpha2 float64, err error) {
	a1, v1, l1 := inner.Angle, inner.Velocity, inner.Length
	a2, v2, l2 := outer.Angle, outer.Velocity, outer.Length

	sinD, cosD := math.Sincos(a1 - a2)
	den := 2*m1 + m2 - m2*math.Cos(2*a1-2*a2)
	den1, den2 := l1*den, l2*den
	if math.Abs(den1) < minDenominator || math.Abs(den2) < minDenominator {
		return 0, 0, ErrDegenerate
	}

	alpha1 = (-g*(2*m1+m2)*math.Sin(a1) -
		m2*g*math.Sin(a1-2*a2) -
		2*sinD*m2*(v2*v2*l2+v1*v1*l1*cosD)) / den1

	alpha2 = 2 * sinD * (v1*v1*l1*(m1+m2) +
		g*(m1+m2)*math.Cos(a1) +
		v2*v2*l2*m2*cosD) / den2

	if !finite(alpha1) || !finite(alpha2) {
		return alpha1, alpha2, ErrDegenerate
	}
	return alpha1, alpha2, nil
}

// Step advances the pendulum by dt. The inner rod is integrated and placed
// first; the outer rod then hangs from the new inner tip. A degenerate step
// leaves the pendulum untouched and returns a *StepError.
func (p *DoublePendulum) Step(dt float64, damping bool, params Params) error {
	m := p.Traits.Mass
	alpha1, alpha2, err := Accelerations(p.Inner, p.Outer, m, m, params.Gravity)
	if err != nil {
		return &StepError{Alpha1: alpha1, Alpha2: alpha2, Wrapped: err}
	}

	if damping {
		alpha1 -= params.Damping * p.Inner.Velocity
		outerV := p.Outer.Velocity
		if params.LegacyOuterDamping {
			outerV = p.Inner.Velocity
		}
		alpha2 -= params.Damping * outerV
	}

	p.Inner.Acceleration = alpha1
	p.Inner.Velocity += alpha1 * dt
	p.Inner.Angle += p.Inner.Velocity * dt
	p.Inner.place(r2.Vec{})

	p.Outer.Acceleration = alpha2
	p.Outer.Velocity += alpha2 * dt
	p.Outer.Angle += p.Outer.Velocity * dt
	p.Outer.place(p.Inner.End)

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
