package qrstyle

import (
	"fmt"
)

// DrawType is the rendering target of a QR code
type DrawType string

const (
	DrawTypeCanvas DrawType = "canvas"
	DrawTypeSVG    DrawType = "svg"
)

var drawTypes = []DrawType{DrawTypeCanvas, DrawTypeSVG}

// Shape is the overall silhouette of a QR code
type Shape string

const (
	ShapeSquare Shape = "square"
	ShapeCircle Shape = "circle"
)

var shapes = []Shape{ShapeSquare, ShapeCircle}

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

var gradientTypes = []GradientType{GradientLinear, GradientRadial}

// Mode is the data encoding mode, it constrains which characters the data may contain
type Mode string

const (
	ModeNumeric      Mode = "Numeric"
	ModeAlphanumeric Mode = "Alphanumeric"
	ModeByte         Mode = "Byte"
	ModeKanji        Mode = "Kanji"
)

var modes = []Mode{ModeNumeric, ModeAlphanumeric, ModeByte, ModeKanji}

// ErrorCorrectionLevel trades data capacity for damage tolerance
type ErrorCorrectionLevel string

const (
	ErrorCorrectionL ErrorCorrectionLevel = "L"
	ErrorCorrectionM ErrorCorrectionLevel = "M"
	ErrorCorrectionQ ErrorCorrectionLevel = "Q"
	ErrorCorrectionH ErrorCorrectionLevel = "H"
)

var errorCorrectionLevels = []ErrorCorrectionLevel{ErrorCorrectionL, ErrorCorrectionM, ErrorCorrectionQ, ErrorCorrectionH}

// CrossOrigin is the fetch policy for the embedded image
type CrossOrigin string

const (
	CrossOriginNone           CrossOrigin = "none"
	CrossOriginAnonymous      CrossOrigin = "anonymous"
	CrossOriginUseCredentials CrossOrigin = "use-credentials"
)

var crossOrigins = []CrossOrigin{CrossOriginNone, CrossOriginAnonymous, CrossOriginUseCredentials}

// DotShape is the visual shape of the body dots
type DotShape string

const (
	DotRounded       DotShape = "rounded"
	DotDots          DotShape = "dots"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
	DotSquare        DotShape = "square"
	DotExtraRounded  DotShape = "extra-rounded"
)

var dotShapes = []DotShape{DotRounded, DotDots, DotClassy, DotClassyRounded, DotSquare, DotExtraRounded}

// CornerShape is the shape of the corner "eye" squares and their inner dots
type CornerShape string

const (
	CornerDot           CornerShape = "dot"
	CornerSquare        CornerShape = "square"
	CornerExtraRounded  CornerShape = "extra-rounded"
	CornerRounded       CornerShape = "rounded"
	CornerDots          CornerShape = "dots"
	CornerClassy        CornerShape = "classy"
	CornerClassyRounded CornerShape = "classy-rounded"
)

var cornerShapes = []CornerShape{
	CornerDot, CornerSquare, CornerExtraRounded, CornerRounded,
	CornerDots, CornerClassy, CornerClassyRounded,
}

func contains[T comparable](values []T, v T) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](kind string, values []T, s string) (T, error) {
	v := T(s)
	if !contains(values, v) {
		return v, fmt.Errorf("%w: %s %q (allowed: %v)", ErrUnknownValue, kind, s, values)
	}
	return v, nil
}

func (t DrawType) Valid() bool             { return contains(drawTypes, t) }
func (s Shape) Valid() bool                { return contains(shapes, s) }
func (t GradientType) Valid() bool         { return contains(gradientTypes, t) }
func (m Mode) Valid() bool                 { return contains(modes, m) }
func (l ErrorCorrectionLevel) Valid() bool { return contains(errorCorrectionLevels, l) }
func (o CrossOrigin) Valid() bool          { return contains(crossOrigins, o) }
func (s DotShape) Valid() bool             { return contains(dotShapes, s) }
func (s CornerShape) Valid() bool          { return contains(cornerShapes, s) }

func ParseDrawType(s string) (DrawType, error) { return parseEnum("type", drawTypes, s) }
func ParseShape(s string) (Shape, error)       { return parseEnum("shape", shapes, s) }
func ParseGradientType(s string) (GradientType, error) {
	return parseEnum("gradient type", gradientTypes, s)
}
func ParseMode(s string) (Mode, error) { return parseEnum("mode", modes, s) }
func ParseErrorCorrectionLevel(s string) (ErrorCorrectionLevel, error) {
	return parseEnum("error correction level", errorCorrectionLevels, s)
}
func ParseCrossOrigin(s string) (CrossOrigin, error) {
	return parseEnum("cross origin", crossOrigins, s)
}
func ParseDotShape(s string) (DotShape, error) { return parseEnum("dot shape", dotShapes, s) }
func ParseCornerShape(s string) (CornerShape, error) {
	return parseEnum("corner shape", cornerShapes, s)
}

// DotShapes returns every dot shape in declaration order.
func DotShapes() []DotShape { return append([]DotShape(nil), dotShapes...) }

// CornerShapes returns every corner shape in declaration order.
func CornerShapes() []CornerShape { return append([]CornerShape(nil), cornerShapes...) }

// UnmarshalText implementations make decoders (json, yaml) reject unknown literals.

func (t *DrawType) UnmarshalText(b []byte) (err error) {
	*t, err = ParseDrawType(string(b))
	return err
}

func (s *Shape) UnmarshalText(b []byte) (err error) {
	*s, err = ParseShape(string(b))
	return err
}

func (t *GradientType) UnmarshalText(b []byte) (err error) {
	*t, err = ParseGradientType(string(b))
	return err
}

func (m *Mode) UnmarshalText(b []byte) (err error) {
	*m, err = ParseMode(string(b))
	return err
}

func (l *ErrorCorrectionLevel) UnmarshalText(b []byte) (err error) {
	*l, err = ParseErrorCorrectionLevel(string(b))
	return err
}

func (o *CrossOrigin) UnmarshalText(b []byte) (err error) {
	*o, err = ParseCrossOrigin(string(b))
	return err
}

func (s *DotShape) UnmarshalText(b []byte) (err error) {
	*s, err = ParseDotShape(string(b))
	return err
}

func (s *CornerShape) UnmarshalText(b []byte) (err error) {
	*s, err = ParseCornerShape(string(b))
	return err
}
