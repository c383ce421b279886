package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutAssignsSlotsInPriorityOrder(t *testing.T) {
	all := Layout(Attributes{Normal: true, UV: true, Tangent: true, Bitangent: true})
	assert.Equal(t, []Binding{
		{KindPosition, 0},
		{KindNormal, 1},
		{KindTangent, 2},
		{KindUV, 3},
		{KindBitangent, 4},
	}, all)

	uvOnly := Layout(Attributes{UV: true})
	assert.Equal(t, []Binding{{KindPosition, 0}, {KindUV, 1}}, uvOnly)

	tangentAndBitangent := Layout(Attributes{Tangent: true, Bitangent: true})
	assert.Equal(t, []Binding{{KindPosition, 0}, {KindTangent, 1}, {KindBitangent, 2}}, tangentAndBitangent)

	assert.Equal(t, []Binding{{KindPosition, 0}}, Layout(Attributes{}))
}

func TestLayoutLengthTracksEnabledKinds(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		attrs := Attributes{
			Normal:    mask&1 != 0,
			UV:        mask&2 != 0,
			Tangent:   mask&4 != 0,
			Bitangent: mask&8 != 0,
		}
		assert.Len(t, Layout(attrs), attrs.Count()+1, "mask %04b", mask)
	}
}

func TestMergeOffsetsIndicesByRunningVertexCount(t *testing.T) {
	tri := SubMesh{
		Name:      "tri",
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Indices:   []uint32{0, 1, 2},
	}
	quad := SubMesh{
		Name:      "quad",
		Positions: []mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}

	m, err := Merge([]SubMesh{tri, quad, tri}, Attributes{UV: true})
	require.NoError(t, err)

	assert.Equal(t, 3+4+3, m.VertexCount())
	assert.Len(t, m.UVs, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6, 7, 8, 9}, m.Indices)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), m.VertexCount())
	}
	assert.NoError(t, m.Validate(Attributes{UV: true}))
}

func TestMergeRejectsNonTriangleLists(t *testing.T) {
	bad := SubMesh{
		Name:      "line",
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		Indices:   []uint32{0, 1},
	}
	_, err := Merge([]SubMesh{bad}, Attributes{})
	assert.Error(t, err)
}

func TestMergeRejectsMissingRequestedAttribute(t *testing.T) {
	s := SubMesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	_, err := Merge([]SubMesh{s}, Attributes{Normal: true})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	q := Quad()
	assert.NoError(t, q.Validate(Attributes{Normal: true, UV: true, Tangent: true, Bitangent: true}))

	q.Indices = append(q.Indices, 0)
	assert.Error(t, q.Validate(Attributes{}))

	q = Quad()
	q.Indices[5] = 99
	assert.Error(t, q.Validate(Attributes{}))

	q = Quad()
	q.UVs = q.UVs[:2]
	assert.Error(t, q.Validate(Attributes{UV: true}))
}

func TestStripKeepsOnlyRequested(t *testing.T) {
	q := Quad().Strip(Attributes{UV: true})
	assert.Nil(t, q.Normals)
	assert.Nil(t, q.Tangents)
	assert.Nil(t, q.Bitangents)
	assert.Len(t, q.UVs, 4)
	assert.Equal(t, 2, q.TriangleCount())
}

func TestDataFlattensByKind(t *testing.T) {
	q := Quad()
	assert.Len(t, q.Data(KindPosition), 12)
	assert.Len(t, q.Data(KindUV), 8)
	assert.Equal(t, []float32{-1, -1, 0}, q.Data(KindPosition)[:3])
	assert.Equal(t, []float32{1, 0}, q.Data(KindUV)[2:4])
}
