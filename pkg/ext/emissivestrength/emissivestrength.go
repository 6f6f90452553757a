// Package emissivestrength implements the KHR_materials_emissive_strength
// glTF extension, which scales a material's emissive factor beyond [0,1].
package emissivestrength

import (
	"encoding/json"

	"github.com/qmuntal/gltf"
)

// ExtensionName is the glTF name of the extension.
const ExtensionName = "KHR_materials_emissive_strength"

func init() {
	gltf.RegisterExtension(ExtensionName, Unmarshal)
}

// EmissiveStrength is the per-material payload.
type EmissiveStrength struct {
	EmissiveStrength float64 `json:"emissiveStrength"`
}

// Unmarshal decodes the extension payload. A missing emissiveStrength
// defaults to 1.
func Unmarshal(data []byte) (any, error) {
	es := &EmissiveStrength{EmissiveStrength: 1}
	if err := json.Unmarshal(data, es); err != nil {
		return nil, err
	}
	return es, nil
}

// Get returns the strength attached to m, if any.
func Get(m *gltf.Material) (float64, bool) {
	if m == nil || m.Extensions == nil {
		return 0, false
	}
	switch v := m.Extensions[ExtensionName].(type) {
	case *EmissiveStrength:
		return v.EmissiveStrength, true
	case EmissiveStrength:
		return v.EmissiveStrength, true
	}
	return 0, false
}
