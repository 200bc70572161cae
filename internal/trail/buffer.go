package trail

import "gonum.org/v1/gonum/spatial/r2"

// DefaultCapacity is the number of tip positions a trail keeps.
const DefaultCapacity = 100

// Buffer is a fixed-capacity FIFO of positions. Pushing into a full buffer
// evicts the oldest position.
type Buffer struct {
	data []r2.Vec
	pos  int
	full bool
}

// NewBuffer creates a Buffer holding at most capacity positions.
// Non-positive capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]r2.Vec, capacity)}
}

func (b *Buffer) Push(p r2.Vec) {
	b.data[b.pos] = p
	b.pos++
	if b.pos >= len(b.data) {
		b.pos = 0
		b.full = true
	}
}

func (b *Buffer) Len() int {
	if b.full {
		return len(b.data)
	}
	return b.pos
}

func (b *Buffer) Cap() int { return len(b.data) }

func (b *Buffer) Clear() {
	b.pos = 0
	b.full = false
}

// Points returns the buffered positions oldest first. The slice is a copy.
func (b *Buffer) Points() []r2.Vec {
	n := b.Len()
	out := make([]r2.Vec, n)
	if b.full {
		copy(out, b.data[b.pos:])
		copy(out[len(b.data)-b.pos:], b.data[:b.pos])
	} else {
		copy(out, b.data[:b.pos])
	}
	return out
}

// Newest returns the most recent position, if any.
func (b *Buffer) Newest() (r2.Vec, bool) {
	if b.Len() == 0 {
		return r2.Vec{}, false
	}
	i := b.pos - 1
	if i < 0 {
		i = len(b.data) - 1
	}
	return b.data[i], true
}
