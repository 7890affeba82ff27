package qr

import (
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// neighbors of a module: top, right, bottom, left
type neighbors struct {
	top, right, bottom, left bool
}

func (n neighbors) count() int {
	c := 0
	for _, v := range []bool{n.top, n.right, n.bottom, n.left} {
		if v {
			c++
		}
	}
	return c
}

// dotCorners decides the corner radii of one module of side s.
// Corners only round where no neighbor touches them, so runs of modules
// merge into continuous shapes.
func dotCorners(shape qrstyle.DotShape, s float64, n neighbors) corners {
	half := s / 2
	freeTL := !n.top && !n.left
	freeTR := !n.top && !n.right
	freeBR := !n.bottom && !n.right
	freeBL := !n.bottom && !n.left

	pick := func(free bool, r float64) float64 {
		if free {
			return r
		}
		return 0
	}

	switch shape {
	case qrstyle.DotDots:
		return corners{half, half, half, half}
	case qrstyle.DotRounded:
		return corners{pick(freeTL, half), pick(freeTR, half), pick(freeBR, half), pick(freeBL, half)}
	case qrstyle.DotExtraRounded:
		if n.count() == 0 {
			return corners{half, half, half, half}
		}
		// an elbow becomes a quarter disc facing away from both neighbors
		if n.count() == 2 && n.top != n.bottom {
			return corners{pick(freeTL, s), pick(freeTR, s), pick(freeBR, s), pick(freeBL, s)}
		}
		return corners{pick(freeTL, half), pick(freeTR, half), pick(freeBR, half), pick(freeBL, half)}
	case qrstyle.DotClassy:
		if n.count() == 0 {
			return corners{half, 0, half, 0}
		}
		return corners{pick(freeTL, half), 0, pick(freeBR, half), 0}
	case qrstyle.DotClassyRounded:
		if n.count() == 0 {
			return corners{s, 0, s, 0}
		}
		return corners{pick(freeTL, s), 0, pick(freeBR, s), 0}
	default:
		return corners{}
	}
}

// drawDot adds one module at x, y.
func drawDot(p pather, shape qrstyle.DotShape, x, y, s float64, n neighbors) {
	roundedRect(p, x, y, s, s, dotCorners(shape, s, n), false)
}

// moduleDotShape maps the per-module corner styles onto a dot shape.
func moduleDotShape(shape qrstyle.CornerShape) (qrstyle.DotShape, bool) {
	switch shape {
	case qrstyle.CornerDots:
		return qrstyle.DotDots, true
	case qrstyle.CornerClassy:
		return qrstyle.DotClassy, true
	case qrstyle.CornerClassyRounded:
		return qrstyle.DotClassyRounded, true
	}
	return "", false
}

// drawModules draws a square block of size x size modules, using dark to
// decide which modules are on.
func drawModules(p pather, shape qrstyle.DotShape, x, y, s float64, size int, dark func(r, c int) bool) {
	on := func(r, c int) bool {
		return r >= 0 && c >= 0 && r < size && c < size && dark(r, c)
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if !on(r, c) {
				continue
			}
			drawDot(p, shape, x+float64(c)*s, y+float64(r)*s, s, neighbors{
				top:    on(r-1, c),
				right:  on(r, c+1),
				bottom: on(r+1, c),
				left:   on(r, c-1),
			})
		}
	}
}

// drawCornerSquare draws the 7x7 outer ring of a finder pattern at x, y.
func drawCornerSquare(p pather, shape qrstyle.CornerShape, x, y, s float64) {
	if dot, ok := moduleDotShape(shape); ok {
		drawModules(p, dot, x, y, s, finderSize, func(r, c int) bool {
			return r == 0 || c == 0 || r == finderSize-1 || c == finderSize-1
		})
		return
	}

	size := finderSize * s
	switch shape {
	case qrstyle.CornerDot:
		circle(p, x+size/2, y+size/2, size/2, false)
		circle(p, x+size/2, y+size/2, size/2-s, true)
	case qrstyle.CornerRounded:
		r := 1.5 * s
		roundedRect(p, x, y, size, size, corners{r, r, r, r}, false)
		ri := 0.5 * s
		roundedRect(p, x+s, y+s, size-2*s, size-2*s, corners{ri, ri, ri, ri}, true)
	case qrstyle.CornerExtraRounded:
		r := 2.5 * s
		roundedRect(p, x, y, size, size, corners{r, r, r, r}, false)
		ri := 1.5 * s
		roundedRect(p, x+s, y+s, size-2*s, size-2*s, corners{ri, ri, ri, ri}, true)
	default:
		rect(p, x, y, size, size, false)
		rect(p, x+s, y+s, size-2*s, size-2*s, true)
	}
}

// drawCornerDot draws the 3x3 center of a finder pattern whose top-left is x, y.
func drawCornerDot(p pather, shape qrstyle.CornerShape, x, y, s float64) {
	x += 2 * s
	y += 2 * s
	if dot, ok := moduleDotShape(shape); ok {
		drawModules(p, dot, x, y, s, 3, func(int, int) bool { return true })
		return
	}

	size := 3 * s
	switch shape {
	case qrstyle.CornerDot:
		circle(p, x+size/2, y+size/2, size/2, false)
	case qrstyle.CornerRounded:
		r := 0.5 * s
		roundedRect(p, x, y, size, size, corners{r, r, r, r}, false)
	case qrstyle.CornerExtraRounded:
		r := s
		roundedRect(p, x, y, size, size, corners{r, r, r, r}, false)
	default:
		rect(p, x, y, size, size, false)
	}
}
