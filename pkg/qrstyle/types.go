package qrstyle

import (
	"github.com/google/uuid"
)

// GradientStop is a single color checkpoint within a gradient
type GradientStop struct {
	ID     string  `json:"id" yaml:"id" mapstructure:"id"`
	Offset float64 `json:"offset" yaml:"offset" mapstructure:"offset"`
	Color  string  `json:"color" yaml:"color" mapstructure:"color"`
}

// NewGradientStop returns a stop with a fresh random id.
func NewGradientStop(offset float64, color string) GradientStop {
	return GradientStop{
		ID:     uuid.New().String(),
		Offset: offset,
		Color:  color,
	}
}

// GradientForm describes an optional gradient fill.
//
// Rotation is in degrees and only applies to linear gradients. ColorStops
// order defines the interpolation order and is never re-sorted.
type GradientForm struct {
	Enabled    bool           `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Type       GradientType   `json:"type" yaml:"type" mapstructure:"type"`
	Rotation   float64        `json:"rotation" yaml:"rotation" mapstructure:"rotation"`
	ColorStops []GradientStop `json:"colorStops" yaml:"colorStops" mapstructure:"colorStops"`
}

// ColorableSection is a region filled either with a flat color or a gradient
type ColorableSection struct {
	Color    string       `json:"color" yaml:"color" mapstructure:"color"`
	Gradient GradientForm `json:"gradient" yaml:"gradient" mapstructure:"gradient"`
}

type QrOptions struct {
	// TypeNumber is the QR version (1..40), 0 picks the smallest that fits
	TypeNumber           int                  `json:"typeNumber" yaml:"typeNumber" mapstructure:"typeNumber"`
	Mode                 Mode                 `json:"mode" yaml:"mode" mapstructure:"mode"`
	ErrorCorrectionLevel ErrorCorrectionLevel `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel" mapstructure:"errorCorrectionLevel"`
}

type ImageOptions struct {
	HideBackgroundDots bool `json:"hideBackgroundDots" yaml:"hideBackgroundDots" mapstructure:"hideBackgroundDots"`
	// ImageSize is the side of the embedded image relative to the symbol
	ImageSize   float64     `json:"imageSize" yaml:"imageSize" mapstructure:"imageSize"`
	Margin      int         `json:"margin" yaml:"margin" mapstructure:"margin"`
	CrossOrigin CrossOrigin `json:"crossOrigin" yaml:"crossOrigin" mapstructure:"crossOrigin"`
	SaveAsBlob  bool        `json:"saveAsBlob" yaml:"saveAsBlob" mapstructure:"saveAsBlob"`
}

type DotsOptions struct {
	Type      DotShape     `json:"type" yaml:"type" mapstructure:"type"`
	Color     string       `json:"color" yaml:"color" mapstructure:"color"`
	RoundSize bool         `json:"roundSize" yaml:"roundSize" mapstructure:"roundSize"`
	Gradient  GradientForm `json:"gradient" yaml:"gradient" mapstructure:"gradient"`
}

// CornerOptions styles the corner squares or the corner dots
type CornerOptions struct {
	Type     CornerShape  `json:"type" yaml:"type" mapstructure:"type"`
	Color    string       `json:"color" yaml:"color" mapstructure:"color"`
	Gradient GradientForm `json:"gradient" yaml:"gradient" mapstructure:"gradient"`
}

// FormState is the complete configuration for one QR code rendering.
// It holds every nested option by value.
type FormState struct {
	Width  int      `json:"width" yaml:"width" mapstructure:"width"`
	Height int      `json:"height" yaml:"height" mapstructure:"height"`
	Type   DrawType `json:"type" yaml:"type" mapstructure:"type"`
	Shape  Shape    `json:"shape" yaml:"shape" mapstructure:"shape"`
	Margin int      `json:"margin" yaml:"margin" mapstructure:"margin"`
	Data   string   `json:"data" yaml:"data" mapstructure:"data"`
	Image  string   `json:"image" yaml:"image" mapstructure:"image"`

	QrOptions            QrOptions        `json:"qrOptions" yaml:"qrOptions" mapstructure:"qrOptions"`
	ImageOptions         ImageOptions     `json:"imageOptions" yaml:"imageOptions" mapstructure:"imageOptions"`
	DotsOptions          DotsOptions      `json:"dotsOptions" yaml:"dotsOptions" mapstructure:"dotsOptions"`
	BackgroundOptions    ColorableSection `json:"backgroundOptions" yaml:"backgroundOptions" mapstructure:"backgroundOptions"`
	CornersSquareOptions CornerOptions    `json:"cornersSquareOptions" yaml:"cornersSquareOptions" mapstructure:"cornersSquareOptions"`
	CornersDotOptions    CornerOptions    `json:"cornersDotOptions" yaml:"cornersDotOptions" mapstructure:"cornersDotOptions"`
}

// Paint is what a renderer fills a region with.
// Gradient is nil unless the section's gradient is enabled.
type Paint struct {
	Color    string
	Gradient *GradientForm
}

// Active reports whether the gradient takes part in rendering.
func (g GradientForm) Active() bool {
	return g.Enabled
}

// Clone returns a copy that shares no stop slice with g.
func (g GradientForm) Clone() GradientForm {
	if g.ColorStops != nil {
		stops := make([]GradientStop, len(g.ColorStops))
		copy(stops, g.ColorStops)
		g.ColorStops = stops
	}
	return g
}

func paint(color string, g GradientForm) Paint {
	if !g.Active() {
		return Paint{Color: color}
	}
	clone := g.Clone()
	return Paint{Color: color, Gradient: &clone}
}

func (s ColorableSection) Paint() Paint { return paint(s.Color, s.Gradient) }
func (o DotsOptions) Paint() Paint      { return paint(o.Color, o.Gradient) }
func (o CornerOptions) Paint() Paint    { return paint(o.Color, o.Gradient) }

func (s ColorableSection) Clone() ColorableSection {
	s.Gradient = s.Gradient.Clone()
	return s
}

func (o DotsOptions) Clone() DotsOptions {
	o.Gradient = o.Gradient.Clone()
	return o
}

func (o CornerOptions) Clone() CornerOptions {
	o.Gradient = o.Gradient.Clone()
	return o
}

// Clone returns a deep copy of the form state.
func (s FormState) Clone() FormState {
	s.DotsOptions = s.DotsOptions.Clone()
	s.BackgroundOptions = s.BackgroundOptions.Clone()
	s.CornersSquareOptions = s.CornersSquareOptions.Clone()
	s.CornersDotOptions = s.CornersDotOptions.Clone()
	return s
}
