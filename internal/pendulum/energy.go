package pendulum

import "math"

// Energy returns the total mechanical energy, taking the pivot as the zero
// of potential energy.
func (p *DoublePendulum) Energy(g float64) float64 {
	m := p.Traits.Mass
	a1, v1, l1 := p.Inner.Angle, p.Inner.Velocity, p.Inner.Length
	a2, v2, l2 := p.Outer.Angle, p.Outer.Velocity, p.Outer.Length

	v1sq := l1 * l1 * v1 * v1
	v2sq := l1*l1*v1*v1 + l2*l2*v2*v2 + 2*l1*l2*v1*v2*math.Cos(a1-a2)
	ke := 0.5*m*v1sq + 0.5*m*v2sq

	y1 := -l1 * math.Cos(a1)
	y2 := y1 - l2*math.Cos(a2)
	pe := m*g*y1 + m*g*y2

	return ke + pe
}
