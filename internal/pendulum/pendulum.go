package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/pendulums/internal/trail"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 10.0
	DefaultGravity = 9.8
)

// Segment is one rod of the pendulum. Start and End are derived from Angle
// and the parent rod on every step.
type Segment struct {
	Length       float64
	Angle        float64
	Velocity     float64
	Acceleration float64
	Start        r2.Vec
	End          r2.Vec
}

// place hangs the segment from start at its current angle.
func (s *Segment) place(start r2.Vec) {
	s.Start = start
	s.End = r2.Add(start, r2.Vec{
		X: s.Length * math.Sin(s.Angle),
		Y: -s.Length * math.Cos(s.Angle),
	})
}

type Traits struct {
	Mass  float64
	Color Color
}

type DoublePendulum struct {
	Inner  Segment
	Outer  Segment
	Traits Traits
	Trail  *trail.Buffer
}

// Spec describes a pendulum to construct.
type Spec struct {
	InnerLength   float64
	OuterLength   float64
	InnerAngle    float64
	OuterAngle    float64
	Mass          float64
	Color         Color
	TrailCapacity int
}

func DefaultSpec() Spec {
	return Spec{
		InnerLength:   DefaultLength,
		OuterLength:   DefaultLength,
		Mass:          DefaultMass,
		TrailCapacity: trail.DefaultCapacity,
	}
}

// New builds a pendulum at rest with the given angles. Both rods are placed
// immediately so the chain holds from the first frame.
func New(s Spec) (*DoublePendulum, error) {
	if !positive(s.InnerLength) {
		return nil, fmt.Errorf("%w: inner length %g", ErrInvalidLength, s.InnerLength)
	}
	if !positive(s.OuterLength) {
		return nil, fmt.Errorf("%w: outer length %g", ErrInvalidLength, s.OuterLength)
	}
	if !positive(s.Mass) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidMass, s.Mass)
	}

	p := &DoublePendulum{
		Inner:  Segment{Length: s.InnerLength, Angle: s.InnerAngle},
		Outer:  Segment{Length: s.OuterLength, Angle: s.OuterAngle},
		Traits: Traits{Mass: s.Mass, Color: s.Color},
		Trail:  trail.NewBuffer(s.TrailCapacity),
	}
	p.place()
	return p, nil
}

// Random builds a pendulum from s with both angles drawn uniformly from
// [0, 2π) and a random colour.
func Random(rng *rand.Rand, s Spec) (*DoublePendulum, error) {
	s.InnerAngle = 2 * math.Pi * rng.Float64()
	s.OuterAngle = 2 * math.Pi * rng.Float64()
	s.Color = RandomColor(rng)
	return New(s)
}

func (p *DoublePendulum) place() {
	p.Inner.place(r2.Vec{})
	p.Outer.place(p.Inner.End)
}

// Tip returns the position of the outer bob.
func (p *DoublePendulum) Tip() r2.Vec { return p.Outer.End }

// SampleTrail records the current tip position.
func (p *DoublePendulum) SampleTrail() { p.Trail.Push(p.Outer.End) }

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
