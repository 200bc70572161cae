package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/pendulums/internal/storage"
	"gonum.org/v1/gonum/spatial/r2"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// squareBounds covers every point with 10% padding and equal x/y extent so
// the trails keep their shape.
func squareBounds(trails []storage.Trail) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, tr := range trails {
		for _, p := range tr.Points {
			b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
			b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
			found = true
		}
	}
	if !found {
		return bounds{}, false
	}

	span := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2
	return bounds{cx - span/2, cx + span/2, cy - span/2, cy + span/2}, true
}

func (b bounds) project(p r2.Vec, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// TrailsToSVG draws every trail with at least two points as a stroked path.
func TrailsToSVG(trails []storage.Trail, width, height int) string {
	b, ok := squareBounds(trails)
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, tr := range trails {
		if len(tr.Points) < 2 {
			continue
		}
		stroke := tr.Color
		if stroke == "" {
			stroke = "#b4b4b4"
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i, p := range tr.Points {
			x, y := b.project(p, width, height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
