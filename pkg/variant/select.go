// Package variant derives lighting variants of a glTF document by editing
// material emissive properties and extension declarations.
package variant

import (
	"strings"

	"github.com/qmuntal/gltf"
)

// DefaultKeywords are matched against material names to find light-emitting
// surfaces.
var DefaultKeywords = []string{"bulb", "glass", "emissive", "lamp", "light"}

// Matches reports whether name contains any of the keywords, ignoring case.
// An empty name never matches.
func Matches(name string, keywords []string) bool {
	if name == "" {
		return false
	}
	name = strings.ToLower(name)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Select returns the indices of the materials whose names match keywords,
// in document order. If none match it returns every material index and
// fallback is true, so that models with uninformative names still get a
// visible effect.
func Select(doc *gltf.Document, keywords []string) (indices []int, fallback bool) {
	if doc == nil {
		return nil, false
	}

	for i, m := range doc.Materials {
		if m != nil && Matches(m.Name, keywords) {
			indices = append(indices, i)
		}
	}
	if len(indices) > 0 {
		return indices, false
	}

	indices = make([]int, len(doc.Materials))
	for i := range doc.Materials {
		indices[i] = i
	}
	return indices, len(indices) > 0
}

// SelectMaterials is like Select but returns the materials themselves.
func SelectMaterials(doc *gltf.Document, keywords []string) []*gltf.Material {
	indices, _ := Select(doc, keywords)
	mats := make([]*gltf.Material, 0, len(indices))
	for _, i := range indices {
		mats = append(mats, doc.Materials[i])
	}
	return mats
}
