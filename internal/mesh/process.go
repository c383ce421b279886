package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Fan triangulates a convex polygon given as a list of corner indices.
// Polygons with fewer than three corners produce nothing.
func Fan(polygon []uint32) []uint32 {
	if len(polygon) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(polygon)-2)*3)
	for i := 2; i < len(polygon); i++ {
		out = append(out, polygon[0], polygon[i-1], polygon[i])
	}
	return out
}

// StripToList converts a triangle strip to a triangle list, keeping a consistent winding.
func StripToList(strip []uint32) []uint32 {
	if len(strip) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(strip)-2)*3)
	for i := 2; i < len(strip); i++ {
		if i%2 == 0 {
			out = append(out, strip[i-2], strip[i-1], strip[i])
		} else {
			out = append(out, strip[i-1], strip[i-2], strip[i])
		}
	}
	return out
}

type vertexKey struct {
	position  mgl32.Vec3
	normal    mgl32.Vec3
	uv        mgl32.Vec2
	tangent   mgl32.Vec3
	bitangent mgl32.Vec3
}

func (s *SubMesh) key(i int) vertexKey {
	k := vertexKey{position: s.Positions[i]}
	if len(s.Normals) > i {
		k.normal = s.Normals[i]
	}
	if len(s.UVs) > i {
		k.uv = s.UVs[i]
	}
	if len(s.Tangents) > i {
		k.tangent = s.Tangents[i]
	}
	if len(s.Bitangents) > i {
		k.bitangent = s.Bitangents[i]
	}
	return k
}

// JoinIdentical collapses vertices whose every attribute is equal and remaps the
// indices onto the surviving vertices.
func JoinIdentical(s SubMesh) SubMesh {
	lookup := make(map[vertexKey]uint32, len(s.Positions))
	remap := make([]uint32, len(s.Positions))

	out := SubMesh{Name: s.Name}
	for i := range s.Positions {
		k := s.key(i)
		if j, found := lookup[k]; found {
			remap[i] = j
			continue
		}
		j := uint32(len(out.Positions))
		lookup[k] = j
		remap[i] = j

		out.Positions = append(out.Positions, s.Positions[i])
		if len(s.Normals) > i {
			out.Normals = append(out.Normals, s.Normals[i])
		}
		if len(s.UVs) > i {
			out.UVs = append(out.UVs, s.UVs[i])
		}
		if len(s.Tangents) > i {
			out.Tangents = append(out.Tangents, s.Tangents[i])
		}
		if len(s.Bitangents) > i {
			out.Bitangents = append(out.Bitangents, s.Bitangents[i])
		}
	}

	out.Indices = make([]uint32, len(s.Indices))
	for i, idx := range s.Indices {
		out.Indices[i] = remap[idx]
	}
	return out
}

// SmoothNormals computes area-weighted vertex normals. Vertices sharing a
// position share a normal, so seams split only by texture coordinates stay smooth.
func SmoothNormals(s *SubMesh) {
	acc := make(map[mgl32.Vec3]mgl32.Vec3, len(s.Positions))
	for t := 0; t+2 < len(s.Indices); t += 3 {
		a, b, c := s.Positions[s.Indices[t]], s.Positions[s.Indices[t+1]], s.Positions[s.Indices[t+2]]
		// cross product length is twice the triangle area
		n := b.Sub(a).Cross(c.Sub(a))
		for _, p := range []mgl32.Vec3{a, b, c} {
			acc[p] = acc[p].Add(n)
		}
	}

	s.Normals = make([]mgl32.Vec3, len(s.Positions))
	for i, p := range s.Positions {
		s.Normals[i] = normalizeOr(acc[p], mgl32.Vec3{0, 0, 1})
	}
}

// TangentSpace computes per-vertex tangents and bitangents from the texture
// coordinate gradients, orthogonalized against the vertex normal. Without texture
// coordinates an arbitrary basis perpendicular to the normal is used.
func TangentSpace(s *SubMesh) {
	n := len(s.Positions)
	if len(s.Normals) != n {
		SmoothNormals(s)
	}

	tan := make([]mgl32.Vec3, n)
	bit := make([]mgl32.Vec3, n)
	if len(s.UVs) == n {
		for t := 0; t+2 < len(s.Indices); t += 3 {
			i0, i1, i2 := s.Indices[t], s.Indices[t+1], s.Indices[t+2]
			e1 := s.Positions[i1].Sub(s.Positions[i0])
			e2 := s.Positions[i2].Sub(s.Positions[i0])
			d1 := s.UVs[i1].Sub(s.UVs[i0])
			d2 := s.UVs[i2].Sub(s.UVs[i0])

			det := d1[0]*d2[1] - d2[0]*d1[1]
			if det == 0 {
				continue
			}
			r := 1 / det
			ft := e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(r)
			fb := e2.Mul(d1[0]).Sub(e1.Mul(d2[0])).Mul(r)
			for _, i := range []uint32{i0, i1, i2} {
				tan[i] = tan[i].Add(ft)
				bit[i] = bit[i].Add(fb)
			}
		}
	}

	s.Tangents = make([]mgl32.Vec3, n)
	s.Bitangents = make([]mgl32.Vec3, n)
	for i := 0; i < n; i++ {
		normal := s.Normals[i]
		t := tan[i].Sub(normal.Mul(normal.Dot(tan[i])))
		if t.Len() < 1e-8 {
			t = perpendicular(normal)
		}
		t = t.Normalize()

		b := normal.Cross(t)
		if bit[i].Dot(b) < 0 {
			b = b.Mul(-1)
		}
		s.Tangents[i] = t
		s.Bitangents[i] = b
	}
}

// DropDegenerate removes triangles that reference the same vertex twice.
func DropDegenerate(s *SubMesh) {
	kept := s.Indices[:0]
	for t := 0; t+2 < len(s.Indices); t += 3 {
		a, b, c := s.Indices[t], s.Indices[t+1], s.Indices[t+2]
		if a == b || b == c || c == a {
			continue
		}
		kept = append(kept, a, b, c)
	}
	s.Indices = kept
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-12 {
		return fallback
	}
	return v.Normalize()
}

func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if abs(n[0]) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return axis.Sub(n.Mul(n.Dot(axis)))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// prepare runs the import post-processing on one triangulated sub-mesh.
func prepare(s SubMesh, attrs Attributes) (SubMesh, error) {
	n := len(s.Positions)
	if attrs.UV && len(s.UVs) != n {
		return SubMesh{}, fmt.Errorf("%w: sub-mesh %q", ErrNoTexCoords, s.Name)
	}
	if len(s.Normals) != n {
		s.Normals = nil
	}
	if len(s.UVs) != n {
		s.UVs = nil
	}
	if len(s.Tangents) != n || len(s.Bitangents) != n {
		s.Tangents, s.Bitangents = nil, nil
	}

	for i, idx := range s.Indices {
		if int(idx) >= n {
			return SubMesh{}, fmt.Errorf("sub-mesh %q: index %d at %d out of range (vertex count %d)", s.Name, idx, i, n)
		}
	}

	s = JoinIdentical(s)
	DropDegenerate(&s)

	if attrs.Normal && s.Normals == nil {
		SmoothNormals(&s)
	}
	if (attrs.Tangent || attrs.Bitangent) && s.Tangents == nil {
		TangentSpace(&s)
	}
	return s, nil
}
