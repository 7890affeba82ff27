package qr

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

func rasterPattern(p qrstyle.Paint, b box) gg.Pattern {
	if p.Gradient == nil {
		return gg.NewSolidPattern(qrstyle.ColorOrBlack(p.Color))
	}

	var grad gg.Gradient
	if p.Gradient.Type == qrstyle.GradientRadial {
		cx, cy, r := radialExtent(b)
		grad = gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	} else {
		x0, y0, x1, y1 := linearEndpoints(b, p.Gradient.Rotation)
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}
	for _, stop := range p.Gradient.ColorStops {
		grad.AddColorStop(stopOffset(stop), qrstyle.ColorOrBlack(stop.Color))
	}
	return grad
}

func fillLayer(dc *gg.Context, l layer) {
	if l.path.empty() {
		return
	}
	l.path.replay(dc)
	dc.SetFillStyle(rasterPattern(l.paint, l.box))
	dc.Fill()
}

// renderPNG rasterizes the scene and encodes it as PNG.
func renderPNG(sc *scene, img *Image) ([]byte, error) {
	dc := gg.NewContext(sc.width, sc.height)
	dc.SetColor(color.Transparent)
	dc.Clear()

	fillLayer(dc, sc.background)

	if sc.clip != nil {
		dc.DrawCircle(sc.clip.cx, sc.clip.cy, sc.clip.r)
		dc.Clip()
	}
	for _, l := range sc.layers {
		fillLayer(dc, l)
	}

	if img != nil && sc.image != nil {
		b := img.Bounds()
		at := sc.image.fit(b.Dx(), b.Dy())
		resized := resize.Resize(uint(math.Max(1, math.Round(at.w))), uint(math.Max(1, math.Round(at.h))), img.Image, resize.Lanczos3)
		dc.DrawImage(resized, int(math.Round(at.x)), int(math.Round(at.y)))
	}
	dc.ResetClip()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
