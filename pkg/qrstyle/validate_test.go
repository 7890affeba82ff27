package qrstyle

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func fieldsOf(err error) []string {
	var out []string
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe.Field)
		}
	}
	return out
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_ZeroValueReportsEverything(t *testing.T) {
	err := FormState{}.Validate()
	require.Error(t, err)

	fields := fieldsOf(err)
	for _, want := range []string{
		"width", "height", "type", "shape",
		"qrOptions.mode", "qrOptions.errorCorrectionLevel",
		"imageOptions.imageSize", "imageOptions.crossOrigin",
		"dotsOptions.type", "dotsOptions.color",
		"backgroundOptions.color",
		"cornersSquareOptions.type", "cornersDotOptions.type",
	} {
		assert.Contains(t, fields, want)
	}
}

func TestValidate_EnumOutsideLiteralSet(t *testing.T) {
	s := Default()
	s.Shape = "hexagon"
	s.DotsOptions.Type = "star"
	s.ImageOptions.CrossOrigin = "same-origin"

	err := s.Validate()
	assert.ErrorIs(t, err, ErrUnknownValue)
	assert.ElementsMatch(t, []string{"shape", "dotsOptions.type", "imageOptions.crossOrigin"}, fieldsOf(err))
}

func TestValidate_Ranges(t *testing.T) {
	s := Default()
	s.QrOptions.TypeNumber = 41
	s.ImageOptions.ImageSize = 1.5
	s.Margin = -1

	err := s.Validate()
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ElementsMatch(t, []string{"qrOptions.typeNumber", "imageOptions.imageSize", "margin"}, fieldsOf(err))
}

func TestValidate_Gradient(t *testing.T) {
	s := Default()
	s.DotsOptions.Gradient = GradientForm{Enabled: true, Type: GradientLinear}
	assert.ErrorIs(t, s.Validate(), ErrGradientStops)

	s.DotsOptions.Gradient.ColorStops = []GradientStop{
		{ID: "a", Offset: 0, Color: "#fff"},
		{ID: "a", Offset: 2, Color: "nope"},
	}
	err := s.Validate()
	assert.ElementsMatch(t, []string{
		"dotsOptions.gradient.colorStops[1].offset",
		"dotsOptions.gradient.colorStops[1].id",
		"dotsOptions.gradient.colorStops[1].color",
	}, fieldsOf(err))
}

func TestValidate_DisabledGradientNotChecked(t *testing.T) {
	s := Default()
	s.BackgroundOptions.Gradient = GradientForm{Enabled: false, Type: "conic", ColorStops: []GradientStop{{Color: "bad"}}}
	assert.NoError(t, s.Validate())
}

func TestCheckData(t *testing.T) {
	cases := []struct {
		name string
		data string
		mode Mode
		err  error
	}{
		{"numeric ok", "0123456789", ModeNumeric, nil},
		{"numeric letter", "12a", ModeNumeric, ErrDataMode},
		{"alphanumeric ok", "HTTP://EXAMPLE.COM/A-B", ModeAlphanumeric, nil},
		{"alphanumeric lowercase", "hello", ModeAlphanumeric, ErrDataMode},
		{"byte anything", "héllo, мир", ModeByte, nil},
		{"kanji ok", "漢字", ModeKanji, nil},
		{"kanji ascii", "abc", ModeKanji, ErrDataMode},
		{"kanji kana", "かな", ModeKanji, nil},
		{"empty", "", ModeByte, ErrEmptyData},
		{"bad mode", "1", Mode("Binary"), ErrUnknownValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckData(tc.data, tc.mode)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestValidate_MaxSize(t *testing.T) {
	s := Default()
	s.Width, s.Height = MaxSize, MaxSize
	require.NoError(t, s.Validate())

	s.Width, s.Height = 200000, 200000
	s.Margin = MaxSize + 1
	s.ImageOptions.Margin = MaxSize + 1
	err := s.Validate()
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ElementsMatch(t, []string{"width", "height", "margin", "imageOptions.margin"}, fieldsOf(err))
}

func TestValidate_NaN(t *testing.T) {
	s := Default()
	s.ImageOptions.ImageSize = math.NaN()
	s.DotsOptions.Gradient = TwoColorGradient(GradientLinear, math.Inf(1), "#000", "#fff")
	s.DotsOptions.Gradient.ColorStops[0].Offset = math.NaN()

	err := s.Validate()
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ElementsMatch(t, []string{
		"imageOptions.imageSize",
		"dotsOptions.gradient.rotation",
		"dotsOptions.gradient.colorStops[0].offset",
	}, fieldsOf(err))
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#000":                   {A: 255},
		"#fff8":                  {R: 255, G: 255, B: 255, A: 0x88},
		"#006994":                {R: 0, G: 0x69, B: 0x94, A: 255},
		"#FF000080":              {R: 255, A: 0x80},
		"rgb(1, 2, 3)":           {R: 1, G: 2, B: 3, A: 255},
		"rgba(10, 20, 30, 0.5)":  {R: 10, G: 20, B: 30, A: 128},
		" White ":                {R: 255, G: 255, B: 255, A: 255},
		"transparent":            {},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "#12", "#ggg", "rgb(1,2)", "rgba(1,2,3,2)", "rgb(300,0,0)", "hotpink", "rgba(0, 0, 0, NaN)", "rgb(NaN, 0, 0)", "rgba(0, 0, 0, Inf)"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}
