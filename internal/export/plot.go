package export

import (
	"errors"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/storage"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoTrails = errors.New("export: no trail has enough points to draw")

// TrailsPlot builds a gonum plot of every trail with equal axis ranges.
func TrailsPlot(trails []storage.Trail, title string) (*plot.Plot, error) {
	b, ok := squareBounds(trails)
	if !ok {
		return nil, ErrNoTrails
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = b.minX, b.maxX
	p.Y.Min, p.Y.Max = b.minY, b.maxY
	p.Add(plotter.NewGrid())

	drawn := 0
	for _, tr := range trails {
		if len(tr.Points) < 2 {
			continue
		}
		xys := make(plotter.XYs, len(tr.Points))
		for i, pt := range tr.Points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = strokeColor(tr.Color)
		line.Width = vg.Points(1)
		p.Add(line)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoTrails
	}
	return p, nil
}

// SavePlot writes the trails to path; the extension picks the format
// (png, jpg, pdf, svg, eps, tif).
func SavePlot(path string, trails []storage.Trail, title string, size vg.Length) error {
	p, err := TrailsPlot(trails, title)
	if err != nil {
		return err
	}
	return p.Save(size, size, path)
}

func strokeColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Gray{Y: 90}
	}
	return c
}
