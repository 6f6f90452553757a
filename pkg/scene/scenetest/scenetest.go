// Package scenetest builds small glTF documents for tests.
package scenetest

import (
	"encoding/binary"
	"math"

	"github.com/qmuntal/gltf"
)

// Triangle returns the little-endian positions of a single triangle.
func Triangle() []byte {
	pos := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	data := make([]byte, 0, len(pos)*12)
	for _, p := range pos {
		for _, f := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
	}
	return data
}

// Document returns a document with one triangle mesh and one material per
// name, each with emissive factor [0.2, 0.2, 0.2].
func Document(names ...string) *gltf.Document {
	data := Triangle()
	bv := 0

	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0", Generator: "scenetest"},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{
			Buffer:     0,
			ByteLength: len(data),
		}},
		Accessors: []*gltf.Accessor{{
			BufferView:    &bv,
			ComponentType: gltf.ComponentFloat,
			Count:         3,
			Type:          gltf.AccessorVec3,
		}},
	}

	prim := &gltf.Primitive{}
	prim.Attributes = map[string]int{gltf.POSITION: 0}
	if len(names) > 0 {
		mat := 0
		prim.Material = &mat
	}
	doc.Meshes = []*gltf.Mesh{{Name: "body", Primitives: []*gltf.Primitive{prim}}}

	mesh := 0
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: &mesh}}

	for _, n := range names {
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:           n,
			EmissiveFactor: [3]float64{0.2, 0.2, 0.2},
		})
	}
	return doc
}

// Names returns the material names of doc in order.
func Names(doc *gltf.Document) []string {
	names := make([]string, 0, len(doc.Materials))
	for _, m := range doc.Materials {
		if m == nil {
			names = append(names, "")
			continue
		}
		names = append(names, m.Name)
	}
	return names
}
