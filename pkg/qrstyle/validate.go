package qrstyle

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding/japanese"
)

const (
	MaxTypeNumber = 40
	// MaxSize bounds width, height and both margins in pixels
	MaxSize = 4096

	alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
)

type validator struct {
	err error
}

func (v *validator) add(field string, err error) {
	if err != nil {
		v.err = multierr.Append(v.err, &FieldError{Field: field, Err: err})
	}
}

func (v *validator) enum(field string, ok bool, value string) {
	if !ok {
		v.add(field, fmt.Errorf("%w: %q", ErrUnknownValue, value))
	}
}

func (v *validator) color(field, value string) {
	if _, err := ParseColor(value); err != nil {
		v.add(field, err)
	}
}

func (v *validator) gradient(field string, g GradientForm) {
	if !g.Active() {
		return
	}
	v.enum(field+".type", g.Type.Valid(), string(g.Type))
	if math.IsNaN(g.Rotation) || math.IsInf(g.Rotation, 0) {
		v.add(field+".rotation", fmt.Errorf("%w: %v", ErrOutOfRange, g.Rotation))
	}
	if len(g.ColorStops) == 0 {
		v.add(field+".colorStops", fmt.Errorf("%w: enabled gradient needs at least one stop", ErrGradientStops))
		return
	}
	seen := make(map[string]struct{}, len(g.ColorStops))
	for i, stop := range g.ColorStops {
		stopField := fmt.Sprintf("%s.colorStops[%d]", field, i)
		if math.IsNaN(stop.Offset) || stop.Offset < 0 || stop.Offset > 1 {
			v.add(stopField+".offset", fmt.Errorf("%w: %v not in [0, 1]", ErrOutOfRange, stop.Offset))
		}
		if _, dup := seen[stop.ID]; dup {
			v.add(stopField+".id", fmt.Errorf("%w: duplicate id %q", ErrGradientStops, stop.ID))
		}
		seen[stop.ID] = struct{}{}
		v.color(stopField+".color", stop.Color)
	}
}

// Validate checks everything the schema leaves to its consumers: literal
// sets, ranges, colors, gradient stops and data/mode compatibility.
// All problems are returned together; use multierr.Errors to split them.
func (s FormState) Validate() error {
	v := &validator{}

	v.add("width", checkSize(s.Width, 1))
	v.add("height", checkSize(s.Height, 1))
	v.add("margin", checkSize(s.Margin, 0))
	v.enum("type", s.Type.Valid(), string(s.Type))
	v.enum("shape", s.Shape.Valid(), string(s.Shape))

	qr := s.QrOptions
	if qr.TypeNumber < 0 || qr.TypeNumber > MaxTypeNumber {
		v.add("qrOptions.typeNumber", fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, qr.TypeNumber, MaxTypeNumber))
	}
	v.enum("qrOptions.mode", qr.Mode.Valid(), string(qr.Mode))
	v.enum("qrOptions.errorCorrectionLevel", qr.ErrorCorrectionLevel.Valid(), string(qr.ErrorCorrectionLevel))
	if qr.Mode.Valid() {
		v.add("data", CheckData(s.Data, qr.Mode))
	}

	img := s.ImageOptions
	if math.IsNaN(img.ImageSize) || img.ImageSize <= 0 || img.ImageSize > 1 {
		v.add("imageOptions.imageSize", fmt.Errorf("%w: %v not in (0, 1]", ErrOutOfRange, img.ImageSize))
	}
	v.add("imageOptions.margin", checkSize(img.Margin, 0))
	v.enum("imageOptions.crossOrigin", img.CrossOrigin.Valid(), string(img.CrossOrigin))

	v.enum("dotsOptions.type", s.DotsOptions.Type.Valid(), string(s.DotsOptions.Type))
	v.color("dotsOptions.color", s.DotsOptions.Color)
	v.gradient("dotsOptions.gradient", s.DotsOptions.Gradient)

	v.color("backgroundOptions.color", s.BackgroundOptions.Color)
	v.gradient("backgroundOptions.gradient", s.BackgroundOptions.Gradient)

	v.enum("cornersSquareOptions.type", s.CornersSquareOptions.Type.Valid(), string(s.CornersSquareOptions.Type))
	v.color("cornersSquareOptions.color", s.CornersSquareOptions.Color)
	v.gradient("cornersSquareOptions.gradient", s.CornersSquareOptions.Gradient)

	v.enum("cornersDotOptions.type", s.CornersDotOptions.Type.Valid(), string(s.CornersDotOptions.Type))
	v.color("cornersDotOptions.color", s.CornersDotOptions.Color)
	v.gradient("cornersDotOptions.gradient", s.CornersDotOptions.Gradient)

	return v.err
}

func checkSize(n, min int) error {
	if n < min || n > MaxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, min, MaxSize)
	}
	return nil
}

// CheckData reports whether data can be encoded in mode.
func CheckData(data string, mode Mode) error {
	if data == "" {
		return ErrEmptyData
	}

	switch mode {
	case ModeNumeric:
		for _, r := range data {
			if r < '0' || r > '9' {
				return fmt.Errorf("%w: %q is not a digit", ErrDataMode, r)
			}
		}
	case ModeAlphanumeric:
		for _, r := range data {
			if !strings.ContainsRune(alphanumericCharset, r) {
				return fmt.Errorf("%w: %q is not in the alphanumeric set", ErrDataMode, r)
			}
		}
	case ModeKanji:
		enc := japanese.ShiftJIS.NewEncoder()
		for _, r := range data {
			b, err := enc.Bytes([]byte(string(r)))
			if err != nil || len(b) != 2 || !isKanjiCode(uint16(b[0])<<8|uint16(b[1])) {
				return fmt.Errorf("%w: %q is not a Shift JIS kanji", ErrDataMode, r)
			}
		}
	case ModeByte:
	default:
		return fmt.Errorf("%w: mode %q", ErrUnknownValue, mode)
	}
	return nil
}

func isKanjiCode(c uint16) bool {
	return (c >= 0x8140 && c <= 0x9ffc) || (c >= 0xe040 && c <= 0xebbf)
}
