package qrstyle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetField(t *testing.T) {
	s := Default()

	require.NoError(t, s.SetField("dots.color", "#ff0000"))
	require.NoError(t, s.SetField("DOTS.TYPE", "classy"))
	require.NoError(t, s.SetField("size", "512"))
	require.NoError(t, s.SetField("qr.ecl", "H"))
	require.NoError(t, s.SetField("image.hide-background-dots", "off"))
	require.NoError(t, s.SetField("corners-square.gradient.enabled", "true"))
	require.NoError(t, s.SetField("corners-square.gradient.stops", "#000 0, #00f 0.6, #f00 1"))
	require.NoError(t, s.SetField("data", "hello world"))

	assert.Equal(t, "#ff0000", s.DotsOptions.Color)
	assert.Equal(t, DotClassy, s.DotsOptions.Type)
	assert.Equal(t, 512, s.Width)
	assert.Equal(t, 512, s.Height)
	assert.Equal(t, ErrorCorrectionH, s.QrOptions.ErrorCorrectionLevel)
	assert.False(t, s.ImageOptions.HideBackgroundDots)
	assert.True(t, s.CornersSquareOptions.Gradient.Enabled)
	assert.Equal(t, "hello world", s.Data)

	stops := s.CornersSquareOptions.Gradient.ColorStops
	require.Len(t, stops, 3)
	assert.Equal(t, "#00f", stops[1].Color)
	assert.Equal(t, 0.6, stops[1].Offset)
	assert.NotEqual(t, stops[0].ID, stops[1].ID)

	assert.NoError(t, s.Validate())
}

func TestSetField_ErrorsLeaveStateUntouched(t *testing.T) {
	s := Default()
	before := s.Clone()

	assert.ErrorIs(t, s.SetField("dots.color", "not-a-color"), ErrInvalidColor)
	assert.ErrorIs(t, s.SetField("shape", "triangle"), ErrUnknownValue)
	assert.ErrorIs(t, s.SetField("width", "wide"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("width", "200000"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("height", "0"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("size", "4097"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("margin", "-1"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("image.margin", "5000"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("image.size", "NaN"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("dots.gradient.stops", "#000 NaN"), ErrOutOfRange)
	assert.ErrorIs(t, s.SetField("dots.gradient.stops", "#000 0, #fff"), ErrGradientStops)
	assert.ErrorIs(t, s.SetField("nope", "1"), ErrUnknownField)
	assert.ErrorIs(t, s.SetField("data", ""), ErrEmptyData)

	assert.Equal(t, before, s)
}

func TestFieldPaths(t *testing.T) {
	paths := FieldPaths()
	assert.Contains(t, paths, "data")
	assert.Contains(t, paths, "background.gradient.rotation")
	assert.Contains(t, paths, "corners-dot.type")
	assert.IsIncreasing(t, paths)
}
