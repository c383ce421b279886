package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Attributes selects which optional per-vertex arrays a mesh carries.
// Positions are always present.
type Attributes struct {
	Normal    bool `yaml:"normal"`
	UV        bool `yaml:"uv"`
	Tangent   bool `yaml:"tangent"`
	Bitangent bool `yaml:"bitangent"`
}

// Count returns how many optional attribute kinds are enabled
func (a Attributes) Count() int {
	n := 0
	for _, on := range []bool{a.Normal, a.UV, a.Tangent, a.Bitangent} {
		if on {
			n++
		}
	}
	return n
}

// Mesh is a flat, indexed triangle list. Every present attribute slice has one
// entry per position and Indices groups every three entries into a triangle.
type Mesh struct {
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	UVs        []mgl32.Vec2
	Tangents   []mgl32.Vec3
	Bitangents []mgl32.Vec3
	Indices    []uint32
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// IndexCount returns the number of indices
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether the mesh has nothing to draw
func (m *Mesh) Empty() bool {
	return len(m.Positions) == 0 || len(m.Indices) == 0
}

// Validate checks the per-vertex and index invariants against the requested attributes.
func (m *Mesh) Validate(attrs Attributes) error {
	n := len(m.Positions)
	check := func(name string, enabled bool, got int) error {
		if enabled && got != n {
			return fmt.Errorf("%s count %d does not match vertex count %d", name, got, n)
		}
		return nil
	}
	if err := check("normal", attrs.Normal, len(m.Normals)); err != nil {
		return err
	}
	if err := check("uv", attrs.UV, len(m.UVs)); err != nil {
		return err
	}
	if err := check("tangent", attrs.Tangent, len(m.Tangents)); err != nil {
		return err
	}
	if err := check("bitangent", attrs.Bitangent, len(m.Bitangents)); err != nil {
		return err
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}

// Quad returns a unit quad covering normalized device coordinates, facing +Z.
func Quad() Mesh {
	return Mesh{
		Positions: []mgl32.Vec3{
			{-1, -1, 0},
			{1, -1, 0},
			{1, 1, 0},
			{-1, 1, 0},
		},
		Normals: []mgl32.Vec3{
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
		},
		UVs: []mgl32.Vec2{
			{0, 0},
			{1, 0},
			{1, 1},
			{0, 1},
		},
		Tangents: []mgl32.Vec3{
			{1, 0, 0},
			{1, 0, 0},
			{1, 0, 0},
			{1, 0, 0},
		},
		Bitangents: []mgl32.Vec3{
			{0, 1, 0},
			{0, 1, 0},
			{0, 1, 0},
			{0, 1, 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Strip drops the attribute arrays that attrs does not ask for.
func (m Mesh) Strip(attrs Attributes) Mesh {
	if !attrs.Normal {
		m.Normals = nil
	}
	if !attrs.UV {
		m.UVs = nil
	}
	if !attrs.Tangent {
		m.Tangents = nil
	}
	if !attrs.Bitangent {
		m.Bitangents = nil
	}
	return m
}
