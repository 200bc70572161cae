package sim

import (
	"github.com/san-kum/pendulums/internal/pendulum"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer draws in simulation coordinates: origin at the pivot, y up.
type Renderer interface {
	DrawSegment(start, end r2.Vec, c pendulum.Color)
	DrawPath(points []r2.Vec, c pendulum.Color)
}

// Observer is notified after every fixed physics tick.
type Observer interface {
	OnTick(t float64, reg *Registry)
}
