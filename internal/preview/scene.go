package preview

import (
	"errors"

	"shadertoy/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShaderScene draws a model through a shader program, feeding it the frame uniforms
type ShaderScene struct {
	Shader   *graphics.Shader
	Model    *graphics.Model
	Channels *graphics.Channels

	// Overlay is drawn over the model when set
	Overlay Overlay

	// Extended sets every ShaderToy input instead of only iResolution and iTime
	Extended bool
	Clear    mgl32.Vec4
}

// Overlay draws on top of a rendered frame
type Overlay interface {
	Draw(u Uniforms)
}

// Render clears the colour buffer, activates the program, sets the uniforms and draws
func (s *ShaderScene) Render(u Uniforms) error {
	gl.Viewport(0, 0, int32(u.Resolution.X()), int32(u.Resolution.Y()))
	gl.ClearColor(s.Clear[0], s.Clear[1], s.Clear[2], s.Clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if s.Shader == nil || s.Model == nil {
		return errors.New("scene has no shader or model")
	}

	s.Shader.Use()
	u.Apply(s.Shader, s.Extended)
	if s.Channels != nil {
		s.Channels.Bind(s.Shader)
	}
	s.Model.Draw()
	if s.Overlay != nil {
		s.Overlay.Draw(u)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return graphics.GLError(code)
	}
	return nil
}
