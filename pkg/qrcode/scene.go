package qr

import (
	"math"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// layer is one filled region with its own paint and gradient box
type layer struct {
	name  string
	paint qrstyle.Paint
	box   box
	path  *path
}

type circleClip struct {
	cx, cy, r float64
}

// placement is where the embedded image goes, in pixels
type placement struct {
	x, y, w, h float64
}

// scene is the backend independent description of a rendered code
type scene struct {
	width, height int
	background    layer
	clip          *circleClip
	layers        []layer
	image         *placement
}

// layout holds the module grid geometry
type layout struct {
	count   int     // modules per side including decorative ring
	offset  int     // index of the symbol's first module in the grid
	module  float64 // module side in pixels
	originX float64
	originY float64
}

func (l layout) pos(row, col int) (float64, float64) {
	return l.originX + float64(col+l.offset)*l.module, l.originY + float64(row+l.offset)*l.module
}

func newLayout(state qrstyle.FormState, m *Matrix) layout {
	side := float64(min(state.Width, state.Height) - 2*state.Margin)
	if side < float64(m.Size) {
		side = float64(m.Size)
	}

	count := m.Size
	symbolSide := side
	if state.Shape == qrstyle.ShapeCircle {
		symbolSide = side / math.Sqrt2
	}
	module := symbolSide / float64(m.Size)
	if state.DotsOptions.RoundSize {
		module = math.Max(1, math.Floor(module))
	}
	if state.Shape == qrstyle.ShapeCircle {
		count = int(math.Ceil(side / module))
		if (count-m.Size)%2 != 0 {
			count++
		}
	}

	gridSide := float64(count) * module
	return layout{
		count:   count,
		offset:  (count - m.Size) / 2,
		module:  module,
		originX: (float64(state.Width) - gridSide) / 2,
		originY: (float64(state.Height) - gridSide) / 2,
	}
}

// imageModules returns the size, in modules, of the area reserved for the
// image. Both sides keep the symbol's odd parity so the area stays centered.
func imageModules(m *Matrix, coefficient float64, imgW, imgH int) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	maxSide := int(float64(m.Size) * coefficient)
	odd := func(n int) int {
		if n < 1 {
			return 1
		}
		if n%2 == 0 {
			return n - 1
		}
		return n
	}
	if imgW >= imgH {
		cols = odd(maxSide)
		rows = odd(int(math.Round(float64(cols) * float64(imgH) / float64(imgW))))
	} else {
		rows = odd(maxSide)
		cols = odd(int(math.Round(float64(rows) * float64(imgW) / float64(imgH))))
	}
	return cols, rows
}

// buildScene lays out every region of the code. imgW and imgH are the
// embedded image's pixel size, zero when there is no image.
func buildScene(state qrstyle.FormState, m *Matrix, imgW, imgH int) *scene {
	l := newLayout(state, m)
	sc := &scene{
		width:  state.Width,
		height: state.Height,
		background: layer{
			name:  "background",
			paint: state.BackgroundOptions.Paint(),
			box:   box{0, 0, float64(state.Width), float64(state.Height)},
			path:  &path{},
		},
	}
	rect(sc.background.path, 0, 0, float64(state.Width), float64(state.Height), false)

	gridSide := float64(l.count) * l.module
	if state.Shape == qrstyle.ShapeCircle {
		sc.clip = &circleClip{
			cx: l.originX + gridSide/2,
			cy: l.originY + gridSide/2,
			r:  gridSide / 2,
		}
	}

	hidden := func(int, int) bool { return false }
	cols, rows := imageModules(m, state.ImageOptions.ImageSize, imgW, imgH)
	if cols > 0 {
		firstCol := (m.Size - cols) / 2
		firstRow := (m.Size - rows) / 2
		x, y := l.pos(firstRow, firstCol)
		margin := float64(state.ImageOptions.Margin)
		sc.image = &placement{
			x: x + margin,
			y: y + margin,
			w: math.Max(1, float64(cols)*l.module-2*margin),
			h: math.Max(1, float64(rows)*l.module-2*margin),
		}
		if state.ImageOptions.HideBackgroundDots {
			hidden = func(r, c int) bool {
				return r >= firstRow && r < firstRow+rows && c >= firstCol && c < firstCol+cols
			}
		}
	}

	// a module is drawn as a body dot when it is dark, outside the finder
	// patterns and not covered by the image
	drawn := func(r, c int) bool {
		return m.Dark(r, c) && !m.InFinder(r, c) && !hidden(r, c)
	}

	dots := layer{
		name:  "dots",
		paint: state.DotsOptions.Paint(),
		box:   box{l.originX, l.originY, gridSide, gridSide},
		path:  &path{},
	}
	for r := 0; r < m.Size; r++ {
		for c := 0; c < m.Size; c++ {
			if !drawn(r, c) {
				continue
			}
			x, y := l.pos(r, c)
			drawDot(dots.path, state.DotsOptions.Type, x, y, l.module, neighbors{
				top:    drawn(r-1, c),
				right:  drawn(r, c+1),
				bottom: drawn(r+1, c),
				left:   drawn(r, c-1),
			})
		}
	}
	if sc.clip != nil {
		addRingDots(dots.path, state.DotsOptions.Type, l, m, sc.clip)
	}
	sc.layers = append(sc.layers, dots)

	finderSide := finderSize * l.module
	for _, origin := range m.finderOrigins() {
		x, y := l.pos(origin[0], origin[1])

		square := layer{
			name:  "cornersSquare",
			paint: state.CornersSquareOptions.Paint(),
			box:   box{x, y, finderSide, finderSide},
			path:  &path{},
		}
		drawCornerSquare(square.path, state.CornersSquareOptions.Type, x, y, l.module)

		dot := layer{
			name:  "cornersDot",
			paint: state.CornersDotOptions.Paint(),
			box:   box{x + 2*l.module, y + 2*l.module, 3 * l.module, 3 * l.module},
			path:  &path{},
		}
		drawCornerDot(dot.path, state.CornersDotOptions.Type, x, y, l.module)

		sc.layers = append(sc.layers, square, dot)
	}

	return sc
}

// addRingDots fills the area between the symbol and the circular clip
// with a deterministic pattern, keeping one quiet module around the symbol.
func addRingDots(p pather, shape qrstyle.DotShape, l layout, m *Matrix, clip *circleClip) {
	on := func(r, c int) bool {
		if r < 0 || c < 0 || r >= l.count || c >= l.count {
			return false
		}
		sr, sc := r-l.offset, c-l.offset
		if sr >= -1 && sr <= m.Size && sc >= -1 && sc <= m.Size {
			return false
		}
		x := l.originX + (float64(c)+0.5)*l.module
		y := l.originY + (float64(r)+0.5)*l.module
		if math.Hypot(x-clip.cx, y-clip.cy) > clip.r-l.module/2 {
			return false
		}
		// cheap integer hash, roughly half of the cells are on
		h := uint32(r)*73856093 ^ uint32(c)*19349663
		return (h>>3)%2 == 0
	}

	for r := 0; r < l.count; r++ {
		for c := 0; c < l.count; c++ {
			if !on(r, c) {
				continue
			}
			drawDot(p, shape,
				l.originX+float64(c)*l.module, l.originY+float64(r)*l.module, l.module,
				neighbors{top: on(r-1, c), right: on(r, c+1), bottom: on(r+1, c), left: on(r, c-1)})
		}
	}
}

// fit scales an iw x ih image into p keeping its aspect ratio, centered.
func (p placement) fit(iw, ih int) placement {
	if iw <= 0 || ih <= 0 {
		return p
	}
	scale := math.Min(p.w/float64(iw), p.h/float64(ih))
	w, h := float64(iw)*scale, float64(ih)*scale
	return placement{
		x: p.x + (p.w-w)/2,
		y: p.y + (p.h-h)/2,
		w: w,
		h: h,
	}
}
