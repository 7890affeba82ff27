package qr

import (
	"math"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// box is the area a region's gradient spans
type box struct {
	x, y, w, h float64
}

func (b box) center() (float64, float64) {
	return b.x + b.w/2, b.y + b.h/2
}

// linearEndpoints returns the gradient line for a rotation in degrees.
// The line passes through the box center and ends on the box edges, so
// 0 runs left to right and 90 runs top to bottom.
func linearEndpoints(b box, degrees float64) (x0, y0, x1, y1 float64) {
	rotation := math.Mod(degrees*math.Pi/180, 2*math.Pi)
	positive := math.Mod(rotation+2*math.Pi, 2*math.Pi)
	cx, cy := b.center()
	x0, y0, x1, y1 = cx, cy, cx, cy

	switch {
	case positive <= 0.25*math.Pi || positive > 1.75*math.Pi:
		x0 -= b.w / 2
		y0 -= b.h / 2 * math.Tan(rotation)
		x1 += b.w / 2
		y1 += b.h / 2 * math.Tan(rotation)
	case positive <= 0.75*math.Pi:
		y0 -= b.h / 2
		x0 -= b.w / 2 / math.Tan(rotation)
		y1 += b.h / 2
		x1 += b.w / 2 / math.Tan(rotation)
	case positive <= 1.25*math.Pi:
		x0 += b.w / 2
		y0 += b.h / 2 * math.Tan(rotation)
		x1 -= b.w / 2
		y1 -= b.h / 2 * math.Tan(rotation)
	default:
		y0 += b.h / 2
		x0 += b.w / 2 / math.Tan(rotation)
		y1 -= b.h / 2
		x1 -= b.w / 2 / math.Tan(rotation)
	}
	return x0, y0, x1, y1
}

// radialExtent returns the center and outer radius of a radial gradient.
func radialExtent(b box) (cx, cy, r float64) {
	cx, cy = b.center()
	return cx, cy, math.Min(b.w, b.h) / 2
}

// stopOffset clamps offsets into the range renderers accept.
func stopOffset(s qrstyle.GradientStop) float64 {
	return math.Max(0, math.Min(1, s.Offset))
}
