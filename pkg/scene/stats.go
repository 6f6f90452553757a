package scene

import (
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
)

// Stats summarizes a loaded document.
type Stats struct {
	Materials  int
	Meshes     int
	Nodes      int
	Primitives int
	Vertices   int
	Triangles  int
	Extensions []string
}

// Summarize counts the contents of doc without reading buffer data.
func Summarize(doc *gltf.Document) Stats {
	if doc == nil {
		return Stats{}
	}

	s := Stats{
		Materials:  len(doc.Materials),
		Meshes:     len(doc.Meshes),
		Nodes:      len(doc.Nodes),
		Extensions: append([]string(nil), doc.ExtensionsUsed...),
	}

	for _, m := range doc.Meshes {
		if m == nil {
			continue
		}
		for _, prim := range m.Primitives {
			if prim == nil {
				continue
			}
			s.Primitives++

			vertices := 0
			if posIdx, ok := prim.Attributes[gltf.POSITION]; ok {
				if acc := accessor(doc, posIdx); acc != nil {
					vertices = acc.Count
				}
			}
			s.Vertices += vertices

			n := vertices
			if prim.Indices != nil {
				n = 0
				if acc := accessor(doc, *prim.Indices); acc != nil {
					n = acc.Count
				}
			}
			s.Triangles += triangles(prim.Mode, n)
		}
	}

	return s
}

// triangles returns the number of faces n vertices form in the given mode.
// Lines and points have none.
func triangles(mode gltf.PrimitiveMode, n int) int {
	switch mode {
	case gltf.PrimitiveTriangles:
		return n / 3
	case gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	}
	return 0
}

func accessor(doc *gltf.Document, idx int) *gltf.Accessor {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil
	}
	return doc.Accessors[idx]
}

func (s Stats) String() string {
	ext := "none"
	if len(s.Extensions) > 0 {
		ext = strings.Join(s.Extensions, ", ")
	}
	return fmt.Sprintf("%d materials, %d meshes, %d vertices, %d triangles, extensions: %s",
		s.Materials, s.Meshes, s.Vertices, s.Triangles, ext)
}
