package viz

import (
	"math"

	"github.com/san-kum/pendulums/internal/pendulum"
	"gonum.org/v1/gonum/spatial/r2"
)

// CanvasRenderer draws simulation geometry onto a Canvas with the pivot in
// the centre. reach is the distance from the pivot that should just fit.
type CanvasRenderer struct {
	canvas *Canvas
	scale  float64
	cx, cy float64
}

func NewCanvasRenderer(c *Canvas, reach float64) *CanvasRenderer {
	w, h := float64(c.SubWidth()), float64(c.SubHeight())
	scale := 1.0
	if reach > 0 {
		scale = 0.95 * math.Min(w, h) / 2 / reach
	}
	return &CanvasRenderer{canvas: c, scale: scale, cx: w / 2, cy: h / 2}
}

func (r *CanvasRenderer) project(p r2.Vec) (int, int) {
	x := r.cx + p.X*r.scale
	y := r.cy - p.Y*r.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (r *CanvasRenderer) DrawSegment(start, end r2.Vec, c pendulum.Color) {
	x0, y0 := r.project(start)
	x1, y1 := r.project(end)
	r.canvas.DrawLine(x0, y0, x1, y1, c.Hex())
}

func (r *CanvasRenderer) DrawPath(points []r2.Vec, c pendulum.Color) {
	ink := c.Hex()
	for i := 1; i < len(points); i++ {
		x0, y0 := r.project(points[i-1])
		x1, y1 := r.project(points[i])
		r.canvas.DrawLine(x0, y0, x1, y1, ink)
	}
}
