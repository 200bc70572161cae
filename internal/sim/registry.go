package sim

import (
	"fmt"

	"github.com/san-kum/pendulums/internal/pendulum"
	"golang.org/x/exp/rand"
)

// Handle identifies a pendulum for as long as it lives. Handles are never
// reused, even across resets.
type Handle uint64

type entry struct {
	handle Handle
	p      *pendulum.DoublePendulum
}

// Registry is an arena of pendulums kept in insertion order.
type Registry struct {
	entries []entry
	index   map[Handle]int
	next    Handle
	spec    pendulum.Spec
	rng     *rand.Rand
}

// NewRegistry validates spec once so later spawns cannot fail.
func NewRegistry(spec pendulum.Spec, rng *rand.Rand) (*Registry, error) {
	if _, err := pendulum.New(spec); err != nil {
		return nil, fmt.Errorf("sim: pendulum template: %w", err)
	}
	return &Registry{
		index: make(map[Handle]int),
		next:  1,
		spec:  spec,
		rng:   rng,
	}, nil
}

// SpawnOne creates a pendulum with random angles and colour.
func (r *Registry) SpawnOne() (Handle, *pendulum.DoublePendulum) {
	p, err := pendulum.Random(r.rng, r.spec)
	if err != nil {
		// spec was validated in NewRegistry
		panic(fmt.Sprintf("sim: spawn from validated template: %v", err))
	}
	return r.Add(p), p
}

func (r *Registry) SpawnMany(n int) {
	for i := 0; i < n; i++ {
		r.SpawnOne()
	}
}

// Add inserts an already built pendulum.
func (r *Registry) Add(p *pendulum.DoublePendulum) Handle {
	h := r.next
	r.next++
	r.index[h] = len(r.entries)
	r.entries = append(r.entries, entry{handle: h, p: p})
	return h
}

// ResetAll removes every pendulum.
func (r *Registry) ResetAll() {
	clear(r.entries)
	r.entries = r.entries[:0]
	clear(r.index)
}

func (r *Registry) Get(h Handle) (*pendulum.DoublePendulum, bool) {
	i, ok := r.index[h]
	if !ok {
		return nil, false
	}
	return r.entries[i].p, true
}

func (r *Registry) Len() int { return len(r.entries) }

// ForEach visits pendulums in insertion order.
func (r *Registry) ForEach(fn func(Handle, *pendulum.DoublePendulum)) {
	for _, e := range r.entries {
		fn(e.handle, e.p)
	}
}

// Energy is the summed mechanical energy of every pendulum under gravity g.
func (r *Registry) Energy(g float64) float64 {
	total := 0.0
	for _, e := range r.entries {
		total += e.p.Energy(g)
	}
	return total
}
