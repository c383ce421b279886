package graphics

import (
	"testing"

	"shadertoy/internal/mesh"

	"github.com/stretchr/testify/assert"
)

type fakeBuffers struct {
	next    uint32
	live    map[uint32]string
	floats  int
	indices int
}

func newFakeBuffers() *fakeBuffers {
	return &fakeBuffers{next: 1, live: map[uint32]string{}}
}

func (f *fakeBuffers) alloc(kind string) uint32 {
	id := f.next
	f.next++
	f.live[id] = kind
	return id
}

func (f *fakeBuffers) GenVertexArray() uint32 { return f.alloc("vao") }

func (f *fakeBuffers) BindVertexArray(uint32) {}

func (f *fakeBuffers) DeleteVertexArray(id uint32) { delete(f.live, id) }

func (f *fakeBuffers) DeleteBuffer(id uint32) { delete(f.live, id) }

func (f *fakeBuffers) UploadFloats(_ uint32, _ []float32) uint32 {
	f.floats++
	return f.alloc("array")
}

func (f *fakeBuffers) UploadIndices(_ []uint32) uint32 {
	f.indices++
	return f.alloc("element")
}

func attrsFromMask(mask int) mesh.Attributes {
	return mesh.Attributes{
		Normal:    mask&1 != 0,
		UV:        mask&2 != 0,
		Tangent:   mask&4 != 0,
		Bitangent: mask&8 != 0,
	}
}

func TestModelCreatesOneBufferPerEnabledKind(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		attrs := attrsFromMask(mask)
		q := mesh.Quad().Strip(attrs)
		api := newFakeBuffers()

		m := newModel(api, &q, attrs)

		// position + index buffers, plus one per enabled optional kind
		assert.Equal(t, 1+attrs.Count(), api.floats, "mask %04b", mask)
		assert.Equal(t, 1, api.indices, "mask %04b", mask)
		assert.Equal(t, attrs.Count()+2, m.BufferCount(), "mask %04b", mask)
		assert.Equal(t, int32(6), m.IndexCount())
		assert.Equal(t, 4, m.VertexCount())
	}
}

func TestModelDeleteReleasesEverything(t *testing.T) {
	attrs := mesh.Attributes{UV: true, Normal: true}
	q := mesh.Quad().Strip(attrs)
	api := newFakeBuffers()

	m := newModel(api, &q, attrs)
	assert.Len(t, api.live, 1+attrs.Count()+2)

	m.Delete()
	assert.Empty(t, api.live)
	assert.Equal(t, 0, m.BufferCount())

	// a second delete is a no-op
	m.Delete()
	assert.Empty(t, api.live)
}

func TestModelEmptyMeshDrawsNothing(t *testing.T) {
	api := newFakeBuffers()
	var empty mesh.Mesh

	m := newModel(api, &empty, mesh.Attributes{UV: true})
	assert.Equal(t, int32(0), m.IndexCount())
	assert.Equal(t, 3, m.BufferCount())
	assert.NotPanics(t, m.Draw)
}

func TestModelLayoutMatchesMeshLayout(t *testing.T) {
	attrs := mesh.Attributes{UV: true}
	q := mesh.Quad().Strip(attrs)
	m := newModel(newFakeBuffers(), &q, attrs)
	assert.Equal(t, mesh.Layout(attrs), m.Layout())
}
