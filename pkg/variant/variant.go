package variant

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
)

// Spec describes one output variant.
type Spec struct {
	Name     string
	Output   string
	Emissive [3]float64
	// Strength > 0 attaches the emissive strength extension to every
	// material. Otherwise the extension is stripped.
	Strength float64
}

// Off is the extinguished variant.
func Off() Spec {
	return Spec{Name: "off", Output: "light_off.glb", Emissive: Black}
}

// On is the lit variant.
func On() Spec {
	return Spec{Name: "on", Output: "light_on.glb", Emissive: WarmWhite, Strength: DefaultStrength}
}

func (s Spec) String() string {
	return fmt.Sprintf("%s (emissive %v, strength %g)", s.Name, s.Emissive, s.Strength)
}

// Report describes what Apply changed.
type Report struct {
	Variant        string
	Selected       []string
	Fallback       bool
	LightsStripped bool
	Boosted        int
	Warnings       []error
}

// Apply transforms doc in place into the variant described by spec.
// Per-material failures never abort the transform; they are returned as
// warnings in the report.
func Apply(doc *gltf.Document, spec Spec, keywords []string) Report {
	rep := Report{Variant: spec.Name}
	if doc == nil {
		rep.Warnings = append(rep.Warnings, errors.New("nil document"))
		return rep
	}

	rep.LightsStripped = StripPunctualLights(doc)

	indices, fallback := Select(doc, keywords)
	rep.Fallback = fallback
	for _, r := range SetEmissive(doc, indices, spec.Emissive) {
		rep.Selected = append(rep.Selected, r.Name)
		if r.Err != nil {
			rep.Warnings = append(rep.Warnings, r.Err)
		}
	}

	if spec.Strength > 0 {
		for _, r := range BoostEmissiveStrength(doc, spec.Strength) {
			if r.Err != nil {
				rep.Warnings = append(rep.Warnings, r.Err)
				continue
			}
			rep.Boosted++
		}
	} else {
		StripEmissiveStrength(doc)
	}

	return rep
}
