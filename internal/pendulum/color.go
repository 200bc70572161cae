package pendulum

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

// Color is the tag a pendulum is drawn with. It is chosen at spawn time and
// never changes.
type Color struct {
	colorful.Color
}

// RandomColor picks a saturated, bright colour so pendulums stay visible on
// a dark background.
func RandomColor(rng *rand.Rand) Color {
	h := rng.Float64() * 360
	s := 0.55 + 0.45*rng.Float64()
	v := 0.75 + 0.25*rng.Float64()
	return Color{colorful.Hsv(h, s, v)}
}

// RGBA8 returns the colour as opaque 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, 255
}
