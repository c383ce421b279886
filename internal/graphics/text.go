package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const textVertexSource = `#version 410 core
layout(location = 0) in vec4 vertex;
uniform mat4 projection;
out vec2 uv;
void main() {
    uv = vertex.zw;
    gl_Position = projection * vec4(vertex.xy, 0.0, 1.0);
}
`

const textFragmentSource = `#version 410 core
in vec2 uv;
uniform sampler2D text;
uniform vec3 textColor;
out vec4 fragColor;
void main() {
    fragColor = vec4(textColor, texture(text, uv).r);
}
`

// TextRenderer draws lines of text from a glyph atlas in window pixel space
type TextRenderer struct {
	atlas      *Atlas
	texture    uint32
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewTextRenderer uploads the atlas and builds the text program
func NewTextRenderer(atlas *Atlas, diag *Diagnostics) *TextRenderer {
	tr := &TextRenderer{
		atlas:  atlas,
		shader: NewShaderSource("text", textVertexSource, textFragmentSource, diag),
	}

	gl.GenTextures(1, &tr.texture)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	// Ensure tight byte alignment for single-channel upload
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	size := atlas.Image.Rect.Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*FloatSize, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return tr
}

// SetViewport sets the pixel space text is laid out in
func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderLines draws lines top to bottom starting with the first baseline at (x, y),
// blended over the current framebuffer.
func (tr *TextRenderer) RenderLines(lines []string, x, y, scale float32, color mgl32.Vec3) {
	step := float32(tr.atlas.LineHeight) * scale
	var vertices []float32
	for _, line := range lines {
		vertices = append(vertices, tr.atlas.Vertices(line, x, y, scale)...)
		y += step
	}
	if len(vertices) == 0 {
		return
	}

	tr.shader.Use()
	tr.shader.SetMatrix4("projection", tr.projection)
	tr.shader.SetVector3("textColor", color)
	tr.shader.SetTexture("text", tr.texture, 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)

	// Orphan the previous storage before the update
	size := len(vertices) * FloatSize
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// Delete releases the atlas texture, buffers and program
func (tr *TextRenderer) Delete() {
	if tr.texture != 0 {
		gl.DeleteTextures(1, &tr.texture)
		tr.texture = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	tr.shader.Delete()
}
