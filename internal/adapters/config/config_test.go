package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

const testConfig = `
settings:
  debug: true
  timezone: UTC
http:
  addr: ":9090"
qr:
  session-ttl: 2h
  defaults:
    data: https://example.com
    shape: circle
    dotsOptions:
      type: classy
      color: "#0055ff"
      roundSize: false
      gradient:
        enabled: true
        type: radial
        rotation: 0
        colorStops:
          - id: a
            offset: 0
            color: "#0055ff"
          - id: b
            offset: 1
            color: "#00aaff"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndDefaults(t *testing.T) {
	require.NoError(t, Load(writeConfig(t, testConfig)))

	assert.Equal(t, ":9090", viper.GetString("http.addr"))
	assert.Equal(t, 2*time.Hour, viper.GetDuration("qr.session-ttl"))
	assert.Equal(t, 30*time.Second, viper.GetDuration("http.write-timeout"))

	state, err := Defaults()
	require.NoError(t, err)

	want := qrstyle.Default()
	want.Data = "https://example.com"
	want.Shape = qrstyle.ShapeCircle
	want.DotsOptions = qrstyle.DotsOptions{
		Type:      qrstyle.DotClassy,
		Color:     "#0055ff",
		RoundSize: false,
		Gradient: qrstyle.GradientForm{
			Enabled: true,
			Type:    qrstyle.GradientRadial,
			ColorStops: []qrstyle.GradientStop{
				{ID: "a", Offset: 0, Color: "#0055ff"},
				{ID: "b", Offset: 1, Color: "#00aaff"},
			},
		},
	}
	assert.Equal(t, want, state)
}

func TestDefaults_Invalid(t *testing.T) {
	require.NoError(t, Load(writeConfig(t, "qr:\n  defaults:\n    shape: hexagon\n")))

	_, err := Defaults()
	assert.ErrorIs(t, err, qrstyle.ErrUnknownValue)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	assert.Error(t, Load(filepath.Join(t.TempDir(), "absent.yaml")))
}
