package variant

import (
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/lumen/pkg/ext/emissivestrength"
)

// declare adds name to list unless an equal-folded entry is present.
func declare(list []string, name string) []string {
	for _, ext := range list {
		if strings.EqualFold(ext, name) {
			return list
		}
	}
	return append(list, name)
}

// undeclare removes every entry equal to name, ignoring case.
func undeclare(list []string, name string) ([]string, bool) {
	out := list[:0]
	removed := false
	for _, ext := range list {
		if strings.EqualFold(ext, name) {
			removed = true
			continue
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return nil, removed
	}
	return out, removed
}

// dropPayload deletes the payload keyed by name, ignoring case.
func dropPayload(ext gltf.Extensions, name string) bool {
	removed := false
	for key := range ext {
		if strings.EqualFold(key, name) {
			delete(ext, key)
			removed = true
		}
	}
	return removed
}

// Declared reports whether doc declares the named extension as used.
func Declared(doc *gltf.Document, name string) bool {
	if doc == nil {
		return false
	}
	for _, ext := range doc.ExtensionsUsed {
		if strings.EqualFold(ext, name) {
			return true
		}
	}
	return false
}

// stripExtension removes name from the root used and required lists and
// deletes the root-level payload.
func stripExtension(doc *gltf.Document, name string) bool {
	var usedRemoved, reqRemoved bool
	doc.ExtensionsUsed, usedRemoved = undeclare(doc.ExtensionsUsed, name)
	doc.ExtensionsRequired, reqRemoved = undeclare(doc.ExtensionsRequired, name)
	payloadRemoved := dropPayload(doc.Extensions, name)
	return usedRemoved || reqRemoved || payloadRemoved
}

// StripPunctualLights removes KHR_lights_punctual from doc: the root
// declarations, the light definitions and every node reference to them.
// Running it on a document without the extension is a no-op.
func StripPunctualLights(doc *gltf.Document) bool {
	if doc == nil {
		return false
	}

	removed := stripExtension(doc, lightspunctual.ExtensionName)
	for _, n := range doc.Nodes {
		if n != nil && dropPayload(n.Extensions, lightspunctual.ExtensionName) {
			removed = true
		}
	}
	return removed
}

// StripEmissiveStrength removes KHR_materials_emissive_strength from the
// root declarations and from every material.
func StripEmissiveStrength(doc *gltf.Document) bool {
	if doc == nil {
		return false
	}

	removed := stripExtension(doc, emissivestrength.ExtensionName)
	for _, m := range doc.Materials {
		if m != nil && dropPayload(m.Extensions, emissivestrength.ExtensionName) {
			removed = true
		}
	}
	return removed
}
