package qr

import (
	"context"
	"fmt"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// Result is a rendered QR code
type Result struct {
	Data        []byte
	ContentType string
	Extension   string
	Version     int
}

// Renderer turns a fully populated form state into an image
type Renderer struct {
	loader ImageLoader
}

// NewRenderer creates a renderer. A nil loader disables embedded images.
func NewRenderer(loader ImageLoader) *Renderer {
	return &Renderer{loader: loader}
}

// Render validates the state, encodes the data and draws it as PNG
// (type "canvas") or SVG (type "svg").
func (r *Renderer) Render(ctx context.Context, state qrstyle.FormState) (*Result, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	matrix, err := Encode(state.Data, state.QrOptions)
	if err != nil {
		return nil, err
	}

	var img *Image
	if state.Image != "" && r.loader != nil {
		img, err = r.loader.Load(ctx, state.Image, state.ImageOptions.CrossOrigin)
		if err != nil {
			return nil, err
		}
	}

	imgW, imgH := 0, 0
	if img != nil {
		imgW, imgH = img.Bounds().Dx(), img.Bounds().Dy()
	}
	sc := buildScene(state, matrix, imgW, imgH)

	if state.Type == qrstyle.DrawTypeSVG {
		var ref *svgImage
		if img != nil {
			href := state.Image
			if state.ImageOptions.SaveAsBlob {
				href = dataURI(img.MIME, img.Raw)
			}
			ref = &svgImage{
				href:        href,
				crossOrigin: state.ImageOptions.CrossOrigin,
				width:       imgW,
				height:      imgH,
			}
		}
		return &Result{
			Data:        renderSVG(sc, ref),
			ContentType: "image/svg+xml",
			Extension:   "svg",
			Version:     matrix.Version,
		}, nil
	}

	data, err := renderPNG(sc, img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return &Result{
		Data:        data,
		ContentType: "image/png",
		Extension:   "png",
		Version:     matrix.Version,
	}, nil
}
