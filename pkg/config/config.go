// Package config holds the run configuration and loads it from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/lumen/pkg/variant"
)

// DefaultSource is the LED bulb model the variants are derived from.
const DefaultSource = "https://pub-e46fd816b4ee497fb2f639f180c4df20.r2.dev/light_led_bulb.glb"

// Variant configures one output.
type Variant struct {
	Output   string     `toml:"output"`
	Emissive [3]float64 `toml:"emissive"`
	Strength float64    `toml:"strength"`
}

// Config is the full run configuration.
type Config struct {
	Source   string   `toml:"source"`
	OutDir   string   `toml:"out_dir"`
	Keywords []string `toml:"keywords"`
	Off      Variant  `toml:"off"`
	On       Variant  `toml:"on"`
}

// Default returns the built-in configuration.
func Default() Config {
	off, on := variant.Off(), variant.On()
	return Config{
		Source:   DefaultSource,
		OutDir:   ".",
		Keywords: append([]string(nil), variant.DefaultKeywords...),
		Off:      Variant{Output: off.Output, Emissive: off.Emissive, Strength: off.Strength},
		On:       Variant{Output: on.Output, Emissive: on.Emissive, Strength: on.Strength},
	}
}

// Load reads a TOML file on top of the defaults. Keys missing from the file
// keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source is empty"))
	}
	variants := []struct {
		name string
		v    Variant
	}{
		{"off", c.Off},
		{"on", c.On},
	}
	for _, e := range variants {
		name, v := e.name, e.v
		if v.Output == "" {
			errs = append(errs, fmt.Errorf("%s: output is empty", name))
		}
		for _, f := range v.Emissive {
			if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
				errs = append(errs, fmt.Errorf("%s: emissive %v must be finite and non-negative", name, v.Emissive))
				break
			}
		}
		if math.IsNaN(v.Strength) || math.IsInf(v.Strength, 0) || v.Strength < 0 {
			errs = append(errs, fmt.Errorf("%s: strength %g must be finite and non-negative", name, v.Strength))
		}
	}
	// The off variant must render unlit.
	if c.Off.Emissive != variant.Black {
		errs = append(errs, fmt.Errorf("off: emissive %v must be black", c.Off.Emissive))
	}
	if c.Off.Strength != 0 {
		errs = append(errs, fmt.Errorf("off: strength %g must be 0", c.Off.Strength))
	}
	if c.Off.Output != "" && filepath.Clean(c.Off.Output) == filepath.Clean(c.On.Output) {
		errs = append(errs, fmt.Errorf("off and on share output %s", c.Off.Output))
	}
	return errors.Join(errs...)
}

// Variants returns the variant specs in run order: off, then on.
func (c Config) Variants() []variant.Spec {
	return []variant.Spec{
		{Name: "off", Output: c.Off.Output, Emissive: c.Off.Emissive, Strength: c.Off.Strength},
		{Name: "on", Output: c.On.Output, Emissive: c.On.Emissive, Strength: c.On.Strength},
	}
}
