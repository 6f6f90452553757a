package variant

import (
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/lumen/pkg/ext/emissivestrength"
)

var (
	// Black extinguishes a material.
	Black = [3]float64{0, 0, 0}
	// WarmWhite is the emissive colour of a lit bulb.
	WarmWhite = [3]float64{1.0, 0.95, 0.8}
)

// DefaultStrength is the emissive strength multiplier of the lit variant.
const DefaultStrength = 2.5

var (
	errNilMaterial   = errors.New("material is nil")
	errOutOfRange    = errors.New("material index out of range")
	errInvalidColor  = errors.New("emissive components must be finite and non-negative")
	errInvalidFactor = errors.New("emissive strength must be finite and positive")
)

// EditError reports a material that could not be edited. It never aborts a
// batch; callers collect it as a warning.
type EditError struct {
	Index int
	Name  string
	Op    string
	Err   error
}

func (e *EditError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("material %d: set %s: %v", e.Index, e.Op, e.Err)
	}
	return fmt.Sprintf("material %d (%s): set %s: %v", e.Index, e.Name, e.Op, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }

// EditResult is the outcome of editing one material.
type EditResult struct {
	Index int
	Name  string
	Err   error
}

// OK reports whether the edit succeeded.
func (r EditResult) OK() bool { return r.Err == nil }

// Failures returns the errors of the failed results.
func Failures(results []EditResult) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

func validColor(rgb [3]float64) bool {
	for _, c := range rgb {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return false
		}
	}
	return true
}

func validStrength(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s > 0
}

func material(doc *gltf.Document, idx int) (*gltf.Material, error) {
	if idx < 0 || idx >= len(doc.Materials) {
		return nil, errOutOfRange
	}
	if doc.Materials[idx] == nil {
		return nil, errNilMaterial
	}
	return doc.Materials[idx], nil
}

// SetEmissive overwrites the emissive factor of each indexed material with
// rgb. Components above 1 are allowed. Failures are recorded per material
// and the loop always continues.
func SetEmissive(doc *gltf.Document, indices []int, rgb [3]float64) []EditResult {
	if doc == nil {
		return nil
	}
	results := make([]EditResult, 0, len(indices))
	for _, idx := range indices {
		res := EditResult{Index: idx}
		m, err := material(doc, idx)
		if m != nil {
			res.Name = m.Name
		}
		if err == nil && !validColor(rgb) {
			err = errInvalidColor
		}
		if err != nil {
			res.Err = &EditError{Index: idx, Name: res.Name, Op: "emissive factor", Err: err}
			results = append(results, res)
			continue
		}

		m.EmissiveFactor = rgb
		results = append(results, res)
	}
	return results
}

// BoostEmissiveStrength attaches the emissive strength extension to every
// material in doc, not only the selected ones, and declares the extension
// at the root when at least one material carries it.
func BoostEmissiveStrength(doc *gltf.Document, strength float64) []EditResult {
	if doc == nil {
		return nil
	}
	results := make([]EditResult, 0, len(doc.Materials))
	attached := 0
	for idx := range doc.Materials {
		res := EditResult{Index: idx}
		m, err := material(doc, idx)
		if m != nil {
			res.Name = m.Name
		}
		if err == nil && !validStrength(strength) {
			err = errInvalidFactor
		}
		if err != nil {
			res.Err = &EditError{Index: idx, Name: res.Name, Op: "emissive strength", Err: err}
			results = append(results, res)
			continue
		}

		if m.Extensions == nil {
			m.Extensions = make(gltf.Extensions)
		}
		m.Extensions[emissivestrength.ExtensionName] = &emissivestrength.EmissiveStrength{EmissiveStrength: strength}
		attached++
		results = append(results, res)
	}

	if attached > 0 {
		doc.ExtensionsUsed = declare(doc.ExtensionsUsed, emissivestrength.ExtensionName)
	}
	return results
}
