package qr

import (
	"fmt"
	"html"
	"strings"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// svgImage is what the <image> element points at
type svgImage struct {
	href        string
	crossOrigin qrstyle.CrossOrigin
	width       int
	height      int
}

func svgColor(s string) (fill string, opacity float64) {
	c := qrstyle.ColorOrBlack(s)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255
}

func writeStops(b *strings.Builder, g *qrstyle.GradientForm) {
	for _, stop := range g.ColorStops {
		fill, opacity := svgColor(stop.Color)
		fmt.Fprintf(b, `<stop offset="%s" stop-color="%s"`, fmtNum(stopOffset(stop)), fill)
		if opacity < 1 {
			fmt.Fprintf(b, ` stop-opacity="%s"`, fmtNum(opacity))
		}
		b.WriteString("/>")
	}
}

// writePaint emits a gradient definition when needed and returns the fill attributes.
func writePaint(b *strings.Builder, id string, p qrstyle.Paint, bx box) string {
	if p.Gradient == nil {
		fill, opacity := svgColor(p.Color)
		if opacity < 1 {
			return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, fill, fmtNum(opacity))
		}
		return fmt.Sprintf(`fill="%s"`, fill)
	}

	if p.Gradient.Type == qrstyle.GradientRadial {
		cx, cy, r := radialExtent(bx)
		fmt.Fprintf(b, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" fx="%s" fy="%s" cx="%s" cy="%s" r="%s">`,
			id, fmtNum(cx), fmtNum(cy), fmtNum(cx), fmtNum(cy), fmtNum(r))
		writeStops(b, p.Gradient)
		b.WriteString("</radialGradient>")
	} else {
		x0, y0, x1, y1 := linearEndpoints(bx, p.Gradient.Rotation)
		fmt.Fprintf(b, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, fmtNum(x0), fmtNum(y0), fmtNum(x1), fmtNum(y1))
		writeStops(b, p.Gradient)
		b.WriteString("</linearGradient>")
	}
	return fmt.Sprintf(`fill="url(#%s)"`, id)
}

// renderSVG writes the scene as a standalone SVG document.
func renderSVG(sc *scene, img *svgImage) []byte {
	var defs, body strings.Builder

	writeLayer := func(i int, l layer) {
		if l.path.empty() {
			return
		}
		fill := writePaint(&defs, fmt.Sprintf("%s-gradient-%d", l.name, i), l.paint, l.box)
		fmt.Fprintf(&body, `<path %s d="%s"/>`, fill, l.path.svg())
	}

	writeLayer(0, sc.background)

	if sc.clip != nil {
		fmt.Fprintf(&defs, `<clipPath id="clip-circle"><circle cx="%s" cy="%s" r="%s"/></clipPath>`,
			fmtNum(sc.clip.cx), fmtNum(sc.clip.cy), fmtNum(sc.clip.r))
		body.WriteString(`<g clip-path="url(#clip-circle)">`)
	}
	for i, l := range sc.layers {
		writeLayer(i, l)
	}
	if img != nil && sc.image != nil {
		at := sc.image.fit(img.width, img.height)
		fmt.Fprintf(&body, `<image href="%s" x="%s" y="%s" width="%s" height="%s"`,
			html.EscapeString(img.href), fmtNum(at.x), fmtNum(at.y), fmtNum(at.w), fmtNum(at.h))
		if img.crossOrigin != "" && img.crossOrigin != qrstyle.CrossOriginNone {
			fmt.Fprintf(&body, ` crossorigin="%s"`, img.crossOrigin)
		}
		body.WriteString("/>")
	}
	if sc.clip != nil {
		body.WriteString("</g>")
	}

	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		sc.width, sc.height, sc.width, sc.height)
	if defs.Len() > 0 {
		out.WriteString("<defs>")
		out.WriteString(defs.String())
		out.WriteString("</defs>")
	}
	out.WriteString(body.String())
	out.WriteString("</svg>\n")
	return []byte(out.String())
}
