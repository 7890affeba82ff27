package qrstyle

import (
	"fmt"
	"strings"
)

// Preset is a named, reusable style template.
//
// Config is called on every application so each use gets its own
// independently mutable partial state.
type Preset struct {
	Name        string
	Description string
	Config      func() PartialFormState
}

// Apply overlays the preset onto s.
func (p Preset) Apply(s FormState) FormState {
	if p.Config == nil {
		return s.Clone()
	}
	return s.Apply(p.Config())
}

// BuiltinPresets returns the built-in gallery. The slice is new on every call.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:        "Classic",
			Description: "Black square modules on white, the scanner-friendly default",
			Config: func() PartialFormState {
				return PartialFormState{
					DotsOptions: &DotsOptions{
						Type:      DotSquare,
						Color:     "#000000",
						RoundSize: true,
						Gradient:  SolidGradient("#000000"),
					},
					BackgroundOptions: &ColorableSection{
						Color:    "#ffffff",
						Gradient: SolidGradient("#ffffff"),
					},
					CornersSquareOptions: &CornerOptions{Type: CornerSquare, Color: "#000000", Gradient: SolidGradient("#000000")},
					CornersDotOptions:    &CornerOptions{Type: CornerSquare, Color: "#000000", Gradient: SolidGradient("#000000")},
				}
			},
		},
		{
			Name:        "Ocean",
			Description: "Rounded deep-sea blue dots",
			Config: func() PartialFormState {
				return PartialFormState{
					DotsOptions: &DotsOptions{
						Type:      DotRounded,
						Color:     "#006994",
						RoundSize: true,
						Gradient: GradientForm{
							Enabled:    false,
							Type:       GradientLinear,
							Rotation:   0,
							ColorStops: []GradientStop{},
						},
					},
				}
			},
		},
		{
			Name:        "Sunset",
			Description: "Classy-rounded dots with an orange to magenta diagonal gradient",
			Config: func() PartialFormState {
				return PartialFormState{
					DotsOptions: &DotsOptions{
						Type:      DotClassyRounded,
						Color:     "#ff7e5f",
						RoundSize: true,
						Gradient:  TwoColorGradient(GradientLinear, 45, "#ff7e5f", "#b5179e"),
					},
					CornersSquareOptions: &CornerOptions{Type: CornerExtraRounded, Color: "#b5179e", Gradient: SolidGradient("#b5179e")},
					CornersDotOptions:    &CornerOptions{Type: CornerDot, Color: "#ff7e5f", Gradient: SolidGradient("#ff7e5f")},
					BackgroundOptions:    &ColorableSection{Color: "#fff7f0", Gradient: SolidGradient("#fff7f0")},
				}
			},
		},
		{
			Name:        "Neon",
			Description: "Glowing radial cyan on a near-black background",
			Config: func() PartialFormState {
				return PartialFormState{
					DotsOptions: &DotsOptions{
						Type:      DotDots,
						Color:     "#00f5d4",
						RoundSize: true,
						Gradient:  TwoColorGradient(GradientRadial, 0, "#00f5d4", "#9b5de5"),
					},
					BackgroundOptions:    &ColorableSection{Color: "#0b0b12", Gradient: SolidGradient("#0b0b12")},
					CornersSquareOptions: &CornerOptions{Type: CornerDot, Color: "#f15bb5", Gradient: SolidGradient("#f15bb5")},
					CornersDotOptions:    &CornerOptions{Type: CornerDot, Color: "#fee440", Gradient: SolidGradient("#fee440")},
				}
			},
		},
		{
			Name:        "Candy",
			Description: "Soft pastel extra-rounded modules in a circle",
			Config: func() PartialFormState {
				return PartialFormState{
					Shape: Ptr(ShapeCircle),
					DotsOptions: &DotsOptions{
						Type:      DotExtraRounded,
						Color:     "#e05780",
						RoundSize: true,
						Gradient:  TwoColorGradient(GradientLinear, 90, "#e05780", "#6a4c93"),
					},
					BackgroundOptions:    &ColorableSection{Color: "#fdf0f5", Gradient: SolidGradient("#fdf0f5")},
					CornersSquareOptions: &CornerOptions{Type: CornerClassyRounded, Color: "#6a4c93", Gradient: SolidGradient("#6a4c93")},
					CornersDotOptions:    &CornerOptions{Type: CornerRounded, Color: "#e05780", Gradient: SolidGradient("#e05780")},
				}
			},
		},
		{
			Name:        "Minimal",
			Description: "Tiny dots and dot-shaped eyes in graphite",
			Config: func() PartialFormState {
				return PartialFormState{
					DotsOptions:          &DotsOptions{Type: DotDots, Color: "#333333", RoundSize: true, Gradient: SolidGradient("#333333")},
					CornersSquareOptions: &CornerOptions{Type: CornerDots, Color: "#333333", Gradient: SolidGradient("#333333")},
					CornersDotOptions:    &CornerOptions{Type: CornerDots, Color: "#333333", Gradient: SolidGradient("#333333")},
				}
			},
		},
		{
			Name:        "CU",
			Description: "Light dots on a dark campus background with maximum error correction",
			Config: func() PartialFormState {
				return PartialFormState{
					Width:  Ptr(512),
					Height: Ptr(512),
					Margin: Ptr(1),
					QrOptions: &QrOptions{
						TypeNumber:           0,
						Mode:                 ModeByte,
						ErrorCorrectionLevel: ErrorCorrectionH,
					},
					DotsOptions:          &DotsOptions{Type: DotDots, Color: "#e6e6e6", RoundSize: true, Gradient: SolidGradient("#e6e6e6")},
					BackgroundOptions:    &ColorableSection{Color: "#141414", Gradient: SolidGradient("#141414")},
					CornersSquareOptions: &CornerOptions{Type: CornerExtraRounded, Color: "#e6e6e6", Gradient: SolidGradient("#e6e6e6")},
					CornersDotOptions:    &CornerOptions{Type: CornerDot, Color: "#e6e6e6", Gradient: SolidGradient("#e6e6e6")},
				}
			},
		},
	}
}

// LookupPreset finds a built-in preset by name, ignoring case.
func LookupPreset(name string) (Preset, error) {
	for _, p := range BuiltinPresets() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}
