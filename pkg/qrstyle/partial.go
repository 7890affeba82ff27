package qrstyle

// PartialFormState is a sparse FormState: nil fields are left untouched
// when it is applied. Nested option blocks are replaced as a whole.
type PartialFormState struct {
	Width  *int      `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height *int      `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	Type   *DrawType `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Shape  *Shape    `json:"shape,omitempty" yaml:"shape,omitempty" mapstructure:"shape"`
	Margin *int      `json:"margin,omitempty" yaml:"margin,omitempty" mapstructure:"margin"`
	Data   *string   `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
	Image  *string   `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`

	QrOptions            *QrOptions        `json:"qrOptions,omitempty" yaml:"qrOptions,omitempty" mapstructure:"qrOptions"`
	ImageOptions         *ImageOptions     `json:"imageOptions,omitempty" yaml:"imageOptions,omitempty" mapstructure:"imageOptions"`
	DotsOptions          *DotsOptions      `json:"dotsOptions,omitempty" yaml:"dotsOptions,omitempty" mapstructure:"dotsOptions"`
	BackgroundOptions    *ColorableSection `json:"backgroundOptions,omitempty" yaml:"backgroundOptions,omitempty" mapstructure:"backgroundOptions"`
	CornersSquareOptions *CornerOptions    `json:"cornersSquareOptions,omitempty" yaml:"cornersSquareOptions,omitempty" mapstructure:"cornersSquareOptions"`
	CornersDotOptions    *CornerOptions    `json:"cornersDotOptions,omitempty" yaml:"cornersDotOptions,omitempty" mapstructure:"cornersDotOptions"`
}

// Ptr returns a pointer to v, handy for building partial states.
func Ptr[T any](v T) *T {
	return &v
}

// Apply overlays p onto a copy of s and returns it. Fields set in p win,
// everything else keeps its value from s. Neither s nor p is modified and
// the result shares no memory with p.
func (s FormState) Apply(p PartialFormState) FormState {
	out := s.Clone()

	if p.Width != nil {
		out.Width = *p.Width
	}
	if p.Height != nil {
		out.Height = *p.Height
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Shape != nil {
		out.Shape = *p.Shape
	}
	if p.Margin != nil {
		out.Margin = *p.Margin
	}
	if p.Data != nil {
		out.Data = *p.Data
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.QrOptions != nil {
		out.QrOptions = *p.QrOptions
	}
	if p.ImageOptions != nil {
		out.ImageOptions = *p.ImageOptions
	}
	if p.DotsOptions != nil {
		out.DotsOptions = p.DotsOptions.Clone()
	}
	if p.BackgroundOptions != nil {
		out.BackgroundOptions = p.BackgroundOptions.Clone()
	}
	if p.CornersSquareOptions != nil {
		out.CornersSquareOptions = p.CornersSquareOptions.Clone()
	}
	if p.CornersDotOptions != nil {
		out.CornersDotOptions = p.CornersDotOptions.Clone()
	}

	return out
}

// Full returns a partial state with every field set from s, used to save
// a complete form as a preset.
func (s FormState) Full() PartialFormState {
	c := s.Clone()
	return PartialFormState{
		Width:                &c.Width,
		Height:               &c.Height,
		Type:                 &c.Type,
		Shape:                &c.Shape,
		Margin:               &c.Margin,
		Data:                 &c.Data,
		Image:                &c.Image,
		QrOptions:            &c.QrOptions,
		ImageOptions:         &c.ImageOptions,
		DotsOptions:          &c.DotsOptions,
		BackgroundOptions:    &c.BackgroundOptions,
		CornersSquareOptions: &c.CornersSquareOptions,
		CornersDotOptions:    &c.CornersDotOptions,
	}
}
