package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

func TestParseSetArgs(t *testing.T) {
	field, value, ok := parseSetArgs("  Dots.Gradient.Stops  #ff0000 0, #0000ff 1 ")
	assert.Equal(t, "dots.gradient.stops", field)
	assert.Equal(t, "#ff0000 0, #0000ff 1", value)
	assert.True(t, ok)

	field, _, ok = parseSetArgs("dots.color")
	assert.Equal(t, "dots.color", field)
	assert.False(t, ok)

	field, _, ok = parseSetArgs("")
	assert.Empty(t, field)
	assert.False(t, ok)
}

func TestPresetMarkup(t *testing.T) {
	markup, err := presetMarkup(qrstyle.BuiltinPresets(), func(name string) (string, error) {
		data, _ := inlinePresetData(name)
		return data, nil
	})
	require.NoError(t, err)
	require.Len(t, markup.InlineKeyboard, (len(qrstyle.BuiltinPresets())+1)/2)
	first := markup.InlineKeyboard[0][0]
	assert.Equal(t, "preset", first.Unique)
	assert.Equal(t, "n:Classic", first.Data)
	assert.Len(t, markup.InlineKeyboard[len(markup.InlineKeyboard)-1], 1, "odd count leaves a single button")
}

func TestSummary(t *testing.T) {
	s := qrstyle.Default()
	s.DotsOptions.Gradient = qrstyle.TwoColorGradient(qrstyle.GradientRadial, 0, "#111", "#222")

	v := summary(s)
	assert.Equal(t, "radial gradient #111 → #222", v.DotsPaint)
	assert.Equal(t, "auto", v.Version)
	assert.Equal(t, "#ffffff", v.Background)

	s.QrOptions.TypeNumber = 7
	assert.Equal(t, "7", summary(s).Version)
}

func TestDecodeForm(t *testing.T) {
	state := qrstyle.Default()
	require.NoError(t, decodeForm([]byte("shape: circle\ndotsOptions:\n  type: dots\n  color: '#ff0000'\n"), &state))
	assert.Equal(t, qrstyle.ShapeCircle, state.Shape)
	assert.Equal(t, qrstyle.DotDots, state.DotsOptions.Type)
	assert.Equal(t, qrstyle.Default().CornersDotOptions, state.CornersDotOptions)

	require.NoError(t, decodeForm([]byte(`{"width": 640}`), &state), "JSON is valid YAML")
	assert.Equal(t, 640, state.Width)

	err := decodeForm([]byte("shape: star\n"), &state)
	assert.ErrorIs(t, err, qrstyle.ErrUnknownValue)
	assert.Equal(t, qrstyle.ShapeCircle, state.Shape)
}

func TestIsField(t *testing.T) {
	assert.True(t, isField("corners-dot.gradient.rotation"))
	assert.False(t, isField("corners"))
}

func TestPresetData(t *testing.T) {
	data, ok := inlinePresetData("Ocean")
	require.True(t, ok)
	name, stored, ok := parsePresetData(data)
	assert.True(t, ok)
	assert.Equal(t, "Ocean", name)
	assert.Empty(t, stored)

	_, ok = inlinePresetData(strings.Repeat("ж", 30))
	assert.False(t, ok, "60 bytes of cyrillic do not fit")

	name, stored, ok = parsePresetData("c:0c4d7a3e")
	assert.True(t, ok)
	assert.Empty(t, name)
	assert.Equal(t, "0c4d7a3e", stored)

	for _, bad := range []string{"", "Ocean", "n:", "c:"} {
		_, _, ok = parsePresetData(bad)
		assert.False(t, ok, bad)
	}
}
