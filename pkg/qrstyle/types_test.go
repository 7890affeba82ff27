package qrstyle

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func populatedState() FormState {
	s := Default()
	s.Width = 640
	s.Height = 480
	s.Type = DrawTypeSVG
	s.Shape = ShapeCircle
	s.Data = "HELLO 123"
	s.Image = "data:image/png;base64,AAAA"
	s.QrOptions = QrOptions{TypeNumber: 7, Mode: ModeAlphanumeric, ErrorCorrectionLevel: ErrorCorrectionH}
	s.ImageOptions = ImageOptions{HideBackgroundDots: false, ImageSize: 0.3, Margin: 4, CrossOrigin: CrossOriginUseCredentials, SaveAsBlob: false}
	s.DotsOptions.Type = DotClassyRounded
	s.DotsOptions.Gradient = GradientForm{
		Enabled:  true,
		Type:     GradientRadial,
		Rotation: 135,
		ColorStops: []GradientStop{
			{ID: "c", Offset: 1, Color: "#0000ff"},
			{ID: "a", Offset: 0, Color: "#ff0000"},
			{ID: "b", Offset: 0.5, Color: "rgba(0, 255, 0, 0.5)"},
		},
	}
	s.CornersSquareOptions.Type = CornerClassy
	s.CornersDotOptions.Type = CornerDot
	return s
}

func TestFormState_JSONRoundTrip(t *testing.T) {
	src := populatedState()

	raw, err := json.Marshal(src)
	require.NoError(t, err)

	var got FormState
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Nil(t, deep.Equal(src, got))
	ids := []string{}
	for _, stop := range got.DotsOptions.Gradient.ColorStops {
		ids = append(ids, stop.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "stop order must survive serialization")
}

func TestFormState_JSONUsesSchemaKeys(t *testing.T) {
	raw, err := json.Marshal(populatedState())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	qr := generic["qrOptions"].(map[string]any)
	assert.Equal(t, "H", qr["errorCorrectionLevel"])
	assert.EqualValues(t, 7, qr["typeNumber"])
	dots := generic["dotsOptions"].(map[string]any)
	assert.Contains(t, dots["gradient"].(map[string]any), "colorStops")
	assert.Equal(t, "use-credentials", generic["imageOptions"].(map[string]any)["crossOrigin"])
}

func TestFormState_YAMLRoundTrip(t *testing.T) {
	src := populatedState()

	raw, err := yaml.Marshal(src)
	require.NoError(t, err)

	var got FormState
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Nil(t, deep.Equal(src, got))
}

func TestFormState_JSONRejectsUnknownLiterals(t *testing.T) {
	cases := map[string]string{
		"shape":       `{"shape":"triangle"}`,
		"type":        `{"type":"webgl"}`,
		"mode":        `{"qrOptions":{"mode":"Binary"}}`,
		"ecl":         `{"qrOptions":{"errorCorrectionLevel":"X"}}`,
		"crossOrigin": `{"imageOptions":{"crossOrigin":"same-origin"}}`,
		"dot shape":   `{"dotsOptions":{"type":"stars"}}`,
		"corner":      `{"cornersSquareOptions":{"type":"hexagon"}}`,
		"gradient":    `{"backgroundOptions":{"gradient":{"type":"conic"}}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var s FormState
			err := json.Unmarshal([]byte(doc), &s)
			assert.ErrorIs(t, err, ErrUnknownValue)
		})
	}
}

func TestEnums_Parse(t *testing.T) {
	for _, shape := range DotShapes() {
		got, err := ParseDotShape(string(shape))
		require.NoError(t, err)
		assert.Equal(t, shape, got)
	}
	for _, shape := range CornerShapes() {
		assert.True(t, shape.Valid())
	}
	assert.Len(t, DotShapes(), 6)
	assert.Len(t, CornerShapes(), 7)

	_, err := ParseCornerShape("Square")
	assert.ErrorIs(t, err, ErrUnknownValue, "literals are case-sensitive")
	assert.False(t, Mode("byte").Valid())
	assert.True(t, ModeKanji.Valid())
}

func TestPaint_DisabledGradientIgnored(t *testing.T) {
	a := ColorableSection{Color: "#abcdef", Gradient: GradientForm{Enabled: false, Type: GradientLinear, Rotation: 10}}
	b := ColorableSection{Color: "#abcdef", Gradient: GradientForm{
		Enabled:    false,
		Type:       GradientRadial,
		Rotation:   270,
		ColorStops: []GradientStop{{ID: "x", Offset: 0.2, Color: "#000"}},
	}}

	assert.Equal(t, a.Paint(), b.Paint())
	assert.Nil(t, a.Paint().Gradient)
}

func TestPaint_EnabledGradientOverridesColor(t *testing.T) {
	opts := DotsOptions{Color: "#000000", Gradient: TwoColorGradient(GradientLinear, 90, "#ff0000", "#0000ff")}

	p := opts.Paint()
	require.NotNil(t, p.Gradient)
	assert.Equal(t, float64(90), p.Gradient.Rotation)

	p.Gradient.ColorStops[0].Color = "#ffffff"
	assert.Equal(t, "#ff0000", opts.Gradient.ColorStops[0].Color)
}

func TestClone_IsDeep(t *testing.T) {
	src := populatedState()
	c := src.Clone()
	c.DotsOptions.Gradient.ColorStops[0].Color = "#ffffff"
	c.CornersDotOptions.Gradient.ColorStops[1].Offset = 0.25

	assert.Equal(t, "#0000ff", src.DotsOptions.Gradient.ColorStops[0].Color)
	assert.Equal(t, float64(1), src.CornersDotOptions.Gradient.ColorStops[1].Offset)
}

func TestNewGradientStop_UniqueIDs(t *testing.T) {
	a := NewGradientStop(0, "#000")
	b := NewGradientStop(0, "#000")
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEmpty(t, a.ID)
}
