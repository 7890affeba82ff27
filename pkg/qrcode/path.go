package qr

import (
	"fmt"
	"strconv"
	"strings"
)

// kappa places cubic control points so that a quarter curve approximates a circle arc
const kappa = 0.5522847498

type pather interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

type opKind int

const (
	opMove opKind = iota
	opLine
	opCubic
	opClose
)

type op struct {
	kind opKind
	pts  [6]float64
}

// path records drawing operations so the same geometry can be replayed
// onto a raster context or written out as SVG path data.
type path struct {
	ops []op
}

func (p *path) MoveTo(x, y float64) { p.ops = append(p.ops, op{kind: opMove, pts: [6]float64{x, y}}) }
func (p *path) LineTo(x, y float64) { p.ops = append(p.ops, op{kind: opLine, pts: [6]float64{x, y}}) }
func (p *path) ClosePath()          { p.ops = append(p.ops, op{kind: opClose}) }

func (p *path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.ops = append(p.ops, op{kind: opCubic, pts: [6]float64{x1, y1, x2, y2, x3, y3}})
}

func (p *path) empty() bool { return len(p.ops) == 0 }

// subpaths counts closed shapes in the path.
func (p *path) subpaths() int {
	n := 0
	for _, o := range p.ops {
		if o.kind == opMove {
			n++
		}
	}
	return n
}

func (p *path) replay(dst pather) {
	for _, o := range p.ops {
		switch o.kind {
		case opMove:
			dst.MoveTo(o.pts[0], o.pts[1])
		case opLine:
			dst.LineTo(o.pts[0], o.pts[1])
		case opCubic:
			dst.CubicTo(o.pts[0], o.pts[1], o.pts[2], o.pts[3], o.pts[4], o.pts[5])
		case opClose:
			dst.ClosePath()
		}
	}
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// svg returns the path as SVG path data.
func (p *path) svg() string {
	var b strings.Builder
	for _, o := range p.ops {
		switch o.kind {
		case opMove:
			fmt.Fprintf(&b, "M%s %s", fmtNum(o.pts[0]), fmtNum(o.pts[1]))
		case opLine:
			fmt.Fprintf(&b, "L%s %s", fmtNum(o.pts[0]), fmtNum(o.pts[1]))
		case opCubic:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s",
				fmtNum(o.pts[0]), fmtNum(o.pts[1]), fmtNum(o.pts[2]),
				fmtNum(o.pts[3]), fmtNum(o.pts[4]), fmtNum(o.pts[5]))
		case opClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// corners holds per-corner radii: top-left, top-right, bottom-right, bottom-left
type corners [4]float64

type segment struct {
	curve      bool
	c1, c2, to [2]float64
}

// roundedRect adds a closed rectangle with per-corner radii. Clockwise
// shapes fill, counter-clockwise ones (reverse) cut holes under the
// nonzero winding rule.
func roundedRect(p pather, x, y, w, h float64, r corners, reverse bool) {
	tl, tr, br, bl := r[0], r[1], r[2], r[3]
	k := 1 - kappa

	start := [2]float64{x + tl, y}
	segs := []segment{
		{to: [2]float64{x + w - tr, y}},
		{curve: true, c1: [2]float64{x + w - tr*k, y}, c2: [2]float64{x + w, y + tr*k}, to: [2]float64{x + w, y + tr}},
		{to: [2]float64{x + w, y + h - br}},
		{curve: true, c1: [2]float64{x + w, y + h - br*k}, c2: [2]float64{x + w - br*k, y + h}, to: [2]float64{x + w - br, y + h}},
		{to: [2]float64{x + bl, y + h}},
		{curve: true, c1: [2]float64{x + bl*k, y + h}, c2: [2]float64{x, y + h - bl*k}, to: [2]float64{x, y + h - bl}},
		{to: [2]float64{x, y + tl}},
		{curve: true, c1: [2]float64{x, y + tl*k}, c2: [2]float64{x + tl*k, y}, to: start},
	}

	if !reverse {
		p.MoveTo(start[0], start[1])
		for _, s := range segs {
			if s.curve {
				p.CubicTo(s.c1[0], s.c1[1], s.c2[0], s.c2[1], s.to[0], s.to[1])
			} else {
				p.LineTo(s.to[0], s.to[1])
			}
		}
		p.ClosePath()
		return
	}

	p.MoveTo(start[0], start[1])
	for i := len(segs) - 1; i >= 0; i-- {
		from := start
		if i > 0 {
			from = segs[i-1].to
		}
		s := segs[i]
		if s.curve {
			p.CubicTo(s.c2[0], s.c2[1], s.c1[0], s.c1[1], from[0], from[1])
		} else {
			p.LineTo(from[0], from[1])
		}
	}
	p.ClosePath()
}

func rect(p pather, x, y, w, h float64, reverse bool) {
	roundedRect(p, x, y, w, h, corners{}, reverse)
}

func circle(p pather, cx, cy, r float64, reverse bool) {
	roundedRect(p, cx-r, cy-r, 2*r, 2*r, corners{r, r, r, r}, reverse)
}
