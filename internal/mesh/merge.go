package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SubMesh is one chunk of an imported scene with indices local to its own vertices.
type SubMesh struct {
	Name       string
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	UVs        []mgl32.Vec2
	Tangents   []mgl32.Vec3
	Bitangents []mgl32.Vec3
	Indices    []uint32
}

// Merge concatenates sub-meshes into one flat mesh. Each sub-mesh's indices are
// offset by the number of vertices appended before it. Sub-meshes must already be
// triangulated.
func Merge(subs []SubMesh, attrs Attributes) (Mesh, error) {
	nvertices, nindices := 0, 0
	for i, s := range subs {
		if len(s.Indices)%3 != 0 {
			return Mesh{}, fmt.Errorf("sub-mesh %d (%s): %d indices is not a triangle list", i, s.Name, len(s.Indices))
		}
		nvertices += len(s.Positions)
		nindices += len(s.Indices)
	}

	var m Mesh
	m.Positions = make([]mgl32.Vec3, 0, nvertices)
	if attrs.Normal {
		m.Normals = make([]mgl32.Vec3, 0, nvertices)
	}
	if attrs.UV {
		m.UVs = make([]mgl32.Vec2, 0, nvertices)
	}
	if attrs.Tangent {
		m.Tangents = make([]mgl32.Vec3, 0, nvertices)
	}
	if attrs.Bitangent {
		m.Bitangents = make([]mgl32.Vec3, 0, nvertices)
	}
	m.Indices = make([]uint32, 0, nindices)

	var offset uint32
	for i, s := range subs {
		n := len(s.Positions)
		if attrs.Normal && len(s.Normals) != n {
			return Mesh{}, fmt.Errorf("sub-mesh %d (%s): missing normals", i, s.Name)
		}
		if attrs.UV && len(s.UVs) != n {
			return Mesh{}, fmt.Errorf("sub-mesh %d (%s): missing texture coordinates", i, s.Name)
		}
		if attrs.Tangent && len(s.Tangents) != n {
			return Mesh{}, fmt.Errorf("sub-mesh %d (%s): missing tangents", i, s.Name)
		}
		if attrs.Bitangent && len(s.Bitangents) != n {
			return Mesh{}, fmt.Errorf("sub-mesh %d (%s): missing bitangents", i, s.Name)
		}

		m.Positions = append(m.Positions, s.Positions...)
		if attrs.Normal {
			m.Normals = append(m.Normals, s.Normals...)
		}
		if attrs.UV {
			m.UVs = append(m.UVs, s.UVs...)
		}
		if attrs.Tangent {
			m.Tangents = append(m.Tangents, s.Tangents...)
		}
		if attrs.Bitangent {
			m.Bitangents = append(m.Bitangents, s.Bitangents...)
		}

		for _, idx := range s.Indices {
			if int(idx) >= n {
				return Mesh{}, fmt.Errorf("sub-mesh %d (%s): index %d out of range", i, s.Name, idx)
			}
			m.Indices = append(m.Indices, idx+offset)
		}
		offset += uint32(n)
	}

	return m, nil
}

func flatten3(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
