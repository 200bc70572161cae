package metrics

import (
	"math"

	"github.com/san-kum/pendulums/internal/sim"
)

const DefaultHistory = 600

// Tracker records total energy after every physics tick. The baseline is
// taken again whenever the number of pendulums changes, since spawning or
// resetting makes the old baseline meaningless.
type Tracker struct {
	gravity  float64
	capacity int
	history  []float64

	count    int
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewTracker(gravity float64, capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Tracker{
		gravity:  gravity,
		capacity: capacity,
		history:  make([]float64, 0, capacity),
		count:    -1,
	}
}

func (t *Tracker) OnTick(_ float64, reg *sim.Registry) {
	energy := reg.Energy(t.gravity)

	if reg.Len() != t.count {
		t.count = reg.Len()
		t.initial = energy
		t.maxDrift = 0
		t.samples = 0
	}

	t.current = energy
	t.samples++
	if t.initial != 0 {
		drift := math.Abs(energy-t.initial) / math.Abs(t.initial)
		t.maxDrift = math.Max(t.maxDrift, drift)
	}

	t.history = append(t.history, energy)
	if len(t.history) > t.capacity {
		t.history = t.history[1:]
	}
}

func (t *Tracker) Initial() float64 { return t.initial }
func (t *Tracker) Current() float64 { return t.current }
func (t *Tracker) Samples() int     { return t.samples }

// MaxDrift is the largest relative deviation from the baseline seen so far.
func (t *Tracker) MaxDrift() float64 { return t.maxDrift }

// History returns a copy of the recorded energies, oldest first.
func (t *Tracker) History() []float64 {
	out := make([]float64, len(t.history))
	copy(out, t.history)
	return out
}

func (t *Tracker) Reset() {
	t.history = t.history[:0]
	t.count = -1
	t.initial = 0
	t.current = 0
	t.maxDrift = 0
	t.samples = 0
}
