package config

import (
	"math"
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/lumen/pkg/variant"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Equal(t, variant.DefaultKeywords, cfg.Keywords)

	specs := cfg.Variants()
	require.Len(t, specs, 2)
	assert.Equal(t, variant.Off(), specs[0])
	assert.Equal(t, variant.On(), specs[1])
}

func TestDefaultKeywordsAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Keywords[0] = "changed"
	assert.Equal(t, "bulb", variant.DefaultKeywords[0])
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
source = "models/desk_lamp.glb"
keywords = ["shade"]

[on]
emissive = [1.0, 0.5, 0.2]
strength = 4.0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "models/desk_lamp.glb", cfg.Source)
	assert.Equal(t, []string{"shade"}, cfg.Keywords)
	assert.Equal(t, [3]float64{1.0, 0.5, 0.2}, cfg.On.Emissive)
	assert.Equal(t, 4.0, cfg.On.Strength)
	assert.Equal(t, "light_on.glb", cfg.On.Output)
	assert.Equal(t, Default().Off, cfg.Off)
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, `colour = "red"`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `
[off]
output = "same.glb"
emissive = [-1.0, 0.0, 0.0]

[on]
output = "same.glb"
strength = -2.0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share output")
	assert.Contains(t, err.Error(), "off: emissive [-1 0 0] must be finite")
	assert.Contains(t, err.Error(), "on: strength -2 must be finite")
}

func TestLoadRejectsLitOff(t *testing.T) {
	_, err := Load(writeConfig(t, `
[off]
emissive = [0.5, 0.5, 0.5]
strength = 3.0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "off: emissive [0.5 0.5 0.5] must be black")
	assert.Contains(t, err.Error(), "off: strength 3 must be 0")

	cfg := Default()
	cfg.On.Emissive = [3]float64{0, 0, 0}
	cfg.On.Strength = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidateErrorOrder(t *testing.T) {
	cfg := Config{
		Off: Variant{Strength: math.Inf(1)},
		On:  Variant{Strength: -1},
	}
	want := []string{
		"source is empty",
		"off: output is empty",
		"off: strength +Inf must be finite and non-negative",
		"on: output is empty",
		"on: strength -1 must be finite and non-negative",
		"off: strength +Inf must be 0",
	}
	for range 10 {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, want, strings.Split(err.Error(), "\n"))
	}
}

func TestValidateEmpty(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source is empty")
	assert.Contains(t, err.Error(), "off: output is empty")
}
