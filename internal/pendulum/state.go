package pendulum

import "github.com/san-kum/pendulums/internal/trail"

// State is the minimal dynamic state of a double pendulum: both angles and
// both angular velocities.
type State struct {
	InnerAngle, OuterAngle       float64
	InnerVelocity, OuterVelocity float64
}

func (p *DoublePendulum) State() State {
	return State{
		InnerAngle:    p.Inner.Angle,
		OuterAngle:    p.Outer.Angle,
		InnerVelocity: p.Inner.Velocity,
		OuterVelocity: p.Outer.Velocity,
	}
}

// SetState overwrites angles and velocities and re-places both rods.
// Accelerations are left as they were until the next step.
func (p *DoublePendulum) SetState(s State) {
	p.Inner.Angle, p.Outer.Angle = s.InnerAngle, s.OuterAngle
	p.Inner.Velocity, p.Outer.Velocity = s.InnerVelocity, s.OuterVelocity
	p.place()
}

// Clone returns an independent copy with an empty trail of the same
// capacity.
func (p *DoublePendulum) Clone() *DoublePendulum {
	c := *p
	c.Trail = trail.NewBuffer(p.Trail.Cap())
	return &c
}
