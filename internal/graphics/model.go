package graphics

import (
	"shadertoy/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	FloatSize = 4
	IndexSize = 4
)

// bufferAPI is the part of GL that Model needs to create and release its storage.
type bufferAPI interface {
	GenVertexArray() uint32
	BindVertexArray(id uint32)
	DeleteVertexArray(id uint32)
	UploadFloats(target uint32, data []float32) uint32
	UploadIndices(data []uint32) uint32
	DeleteBuffer(id uint32)
}

type glBuffers struct{}

func (glBuffers) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (glBuffers) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (glBuffers) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (glBuffers) UploadFloats(target uint32, data []float32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(target, buf)
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(target, len(data)*FloatSize, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return buf
}

func (glBuffers) UploadIndices(data []uint32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*IndexSize, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return buf
}

func (glBuffers) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

// Model is a mesh resident on the GPU: one immutable buffer per enabled
// attribute kind plus one index buffer.
type Model struct {
	api bufferAPI

	VAO        uint32
	layout     []mesh.Binding
	buffers    []uint32 // parallel to layout
	elements   uint32
	indexCount int32
	vertices   int
}

// NewModel uploads m to the GPU using the attribute kinds in attrs
func NewModel(m *mesh.Mesh, attrs mesh.Attributes) *Model {
	return newModel(glBuffers{}, m, attrs)
}

func newModel(api bufferAPI, m *mesh.Mesh, attrs mesh.Attributes) *Model {
	model := &Model{
		api:        api,
		layout:     mesh.Layout(attrs),
		indexCount: int32(m.IndexCount()),
		vertices:   m.VertexCount(),
	}

	model.VAO = api.GenVertexArray()
	api.BindVertexArray(model.VAO)

	model.elements = api.UploadIndices(m.Indices)
	model.buffers = make([]uint32, len(model.layout))
	for i, b := range model.layout {
		model.buffers[i] = api.UploadFloats(gl.ARRAY_BUFFER, m.Data(b.Kind))
	}

	api.BindVertexArray(0)
	return model
}

// Layout returns the attribute slot bindings used by Draw
func (m *Model) Layout() []mesh.Binding {
	return m.layout
}

// BufferCount returns the number of GPU buffers held, index buffer included
func (m *Model) BufferCount() int {
	n := len(m.buffers)
	if m.elements != 0 {
		n++
	}
	return n
}

// IndexCount returns the number of indices drawn per call
func (m *Model) IndexCount() int32 {
	return m.indexCount
}

// VertexCount returns the number of uploaded vertices
func (m *Model) VertexCount() int {
	return m.vertices
}

// Draw binds every attribute buffer to its slot and issues one indexed
// triangle-list draw over the whole index buffer. Empty models draw nothing.
func (m *Model) Draw() {
	if m.indexCount == 0 || m.VAO == 0 {
		return
	}

	gl.BindVertexArray(m.VAO)
	for i, b := range m.layout {
		gl.EnableVertexAttribArray(b.Slot)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[i])
		gl.VertexAttribPointer(b.Slot, b.Kind.Components(), gl.FLOAT, false, 0, gl.PtrOffset(0))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.elements)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)

	for _, b := range m.layout {
		gl.DisableVertexAttribArray(b.Slot)
	}
	gl.BindVertexArray(0)
}

// Delete releases every buffer that was created, then the vertex array
func (m *Model) Delete() {
	for i, buf := range m.buffers {
		if buf != 0 {
			m.api.DeleteBuffer(buf)
			m.buffers[i] = 0
		}
	}
	m.buffers = nil
	if m.elements != 0 {
		m.api.DeleteBuffer(m.elements)
		m.elements = 0
	}
	if m.VAO != 0 {
		m.api.DeleteVertexArray(m.VAO)
		m.VAO = 0
	}
}
