package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFan(t *testing.T) {
	assert.Nil(t, Fan([]uint32{0, 1}))
	assert.Equal(t, []uint32{0, 1, 2}, Fan([]uint32{0, 1, 2}))
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}, Fan([]uint32{0, 1, 2, 3, 4}))
}

func TestStripToList(t *testing.T) {
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, StripToList([]uint32{0, 1, 2, 3}))
}

func TestJoinIdenticalCollapsesDuplicates(t *testing.T) {
	// two triangles of a quad, expanded per corner
	s := SubMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 3, 4, 5},
	}
	out := JoinIdentical(s)
	assert.Len(t, out.Positions, 4)
	assert.Len(t, out.UVs, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, out.Indices)
}

func TestJoinIdenticalKeepsSeams(t *testing.T) {
	s := SubMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {0, 0, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}},
		Indices:   []uint32{0, 1, 1},
	}
	out := JoinIdentical(s)
	assert.Len(t, out.Positions, 2)
}

func TestDropDegenerate(t *testing.T) {
	s := SubMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2, 0, 0, 1},
	}
	DropDegenerate(&s)
	assert.Equal(t, []uint32{0, 1, 2}, s.Indices)
}

func TestSmoothNormalsFlatQuad(t *testing.T) {
	q := Quad()
	s := SubMesh{Positions: q.Positions, Indices: q.Indices}
	SmoothNormals(&s)
	for _, n := range s.Normals {
		assert.InDelta(t, 1, n.Z(), 1e-6)
	}
}

func TestTangentSpaceFollowsUVs(t *testing.T) {
	q := Quad()
	s := SubMesh{Positions: q.Positions, UVs: q.UVs, Normals: q.Normals, Indices: q.Indices}
	TangentSpace(&s)
	for i := range s.Positions {
		assert.InDelta(t, 1, s.Tangents[i].X(), 1e-5)
		assert.InDelta(t, 1, s.Bitangents[i].Y(), 1e-5)
		assert.InDelta(t, 0, s.Tangents[i].Dot(s.Normals[i]), 1e-5)
	}
}

func TestTangentSpaceWithoutUVs(t *testing.T) {
	q := Quad()
	s := SubMesh{Positions: q.Positions, Indices: q.Indices}
	TangentSpace(&s)
	assert.Len(t, s.Normals, 4)
	for i := range s.Positions {
		assert.InDelta(t, 1, s.Tangents[i].Len(), 1e-5)
		assert.InDelta(t, 0, s.Tangents[i].Dot(s.Normals[i]), 1e-5)
	}
}

func TestPrepareRequiresUVs(t *testing.T) {
	q := Quad()
	s := SubMesh{Name: "bare", Positions: q.Positions, Indices: q.Indices}
	_, err := prepare(s, Attributes{UV: true})
	assert.ErrorIs(t, err, ErrNoTexCoords)
}

func TestPrepareGeneratesRequested(t *testing.T) {
	q := Quad()
	s := SubMesh{Positions: q.Positions, UVs: q.UVs, Indices: q.Indices}
	out, err := prepare(s, Attributes{Normal: true, UV: true, Tangent: true, Bitangent: true})
	assert.NoError(t, err)
	assert.Len(t, out.Normals, 4)
	assert.Len(t, out.Tangents, 4)
	assert.Len(t, out.Bitangents, 4)
}
