package qrstyle

const (
	DefaultSize = 300
	DefaultData = "https://qr-code-styling.com"
)

// SolidGradient returns a disabled two-stop gradient of the given color.
// It is the placeholder every section carries until the user enables it.
func SolidGradient(color string) GradientForm {
	return GradientForm{
		Enabled:  false,
		Type:     GradientLinear,
		Rotation: 0,
		ColorStops: []GradientStop{
			{ID: "stop-start", Offset: 0, Color: color},
			{ID: "stop-end", Offset: 1, Color: color},
		},
	}
}

// TwoColorGradient returns an enabled gradient between from and to.
func TwoColorGradient(t GradientType, rotation float64, from, to string) GradientForm {
	return GradientForm{
		Enabled:  true,
		Type:     t,
		Rotation: rotation,
		ColorStops: []GradientStop{
			{ID: "stop-start", Offset: 0, Color: from},
			{ID: "stop-end", Offset: 1, Color: to},
		},
	}
}

// Default returns a fully populated form state that passes Validate.
// Every call builds a new value.
func Default() FormState {
	return FormState{
		Width:  DefaultSize,
		Height: DefaultSize,
		Type:   DrawTypeCanvas,
		Shape:  ShapeSquare,
		Margin: 10,
		Data:   DefaultData,
		Image:  "",
		QrOptions: QrOptions{
			TypeNumber:           0,
			Mode:                 ModeByte,
			ErrorCorrectionLevel: ErrorCorrectionQ,
		},
		ImageOptions: ImageOptions{
			HideBackgroundDots: true,
			ImageSize:          0.4,
			Margin:             0,
			CrossOrigin:        CrossOriginAnonymous,
			SaveAsBlob:         true,
		},
		DotsOptions: DotsOptions{
			Type:      DotSquare,
			Color:     "#000000",
			RoundSize: true,
			Gradient:  SolidGradient("#000000"),
		},
		BackgroundOptions: ColorableSection{
			Color:    "#ffffff",
			Gradient: SolidGradient("#ffffff"),
		},
		CornersSquareOptions: CornerOptions{
			Type:     CornerSquare,
			Color:    "#000000",
			Gradient: SolidGradient("#000000"),
		},
		CornersDotOptions: CornerOptions{
			Type:     CornerSquare,
			Color:    "#000000",
			Gradient: SolidGradient("#000000"),
		},
	}
}
