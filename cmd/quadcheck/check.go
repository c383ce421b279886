package main

import (
	"errors"
	"fmt"

	"shadertoy/internal/graphics"
	"shadertoy/internal/input"
	"shadertoy/internal/mesh"
	"shadertoy/internal/preview"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func openWindow(width, height int, visible bool) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, "quadcheck", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open glfw window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("failed to initialize opengl: %w", err)
	}
	return window, nil
}

// Result summarizes a readback comparison
type Result struct {
	Pixels     int
	Mismatched int
	// First is the first differing pixel, bottom-left origin
	First [2]int
	Got   [4]byte
	Want  [4]byte
}

// capture reads the back buffer right before it is presented
type capture struct {
	*glfw.Window
	pixels []byte
	width  int
	height int
}

func (c *capture) SwapBuffers() {
	c.width, c.height = c.GetFramebufferSize()
	c.pixels = graphics.ReadPixels(0, 0, c.width, c.height)
	c.Window.SwapBuffers()
}

func (c *capture) PollEvents() {
	glfw.PollEvents()
}

func (c *capture) FramebufferSize() (int, int) {
	return c.GetFramebufferSize()
}

// Check draws one frame of the unit quad with the fragment shader's color
// uniform set to want and compares every pixel of the framebuffer.
func Check(window *glfw.Window, vertexPath, fragmentPath string, want mgl32.Vec4) (Result, error) {
	attrs := mesh.Attributes{UV: true}
	quad := mesh.Quad().Strip(attrs)
	model := graphics.NewModel(&quad, attrs)
	defer model.Delete()

	shader := graphics.NewShader(vertexPath, fragmentPath, nil)
	defer shader.Delete()
	if err := shader.Err(); err != nil {
		return Result{}, fmt.Errorf("build shader: %w", err)
	}

	scene := &preview.ShaderScene{Shader: shader, Model: model}
	target := &capture{Window: window}
	setColor := func(preview.Tick) {
		shader.Use()
		shader.SetVector4("color", want)
	}
	driver := preview.NewDriver(target, input.NewManager(), scene, preview.WithHook(setColor))
	if err := driver.Start(); err != nil {
		return Result{}, err
	}
	if !driver.Step() {
		return Result{}, errors.New("window closed before the first frame")
	}
	driver.Stop()

	return compare(target.pixels, target.width, target.height, want), nil
}

func compare(pixels []byte, width, height int, want mgl32.Vec4) Result {
	res := Result{Pixels: width * height, Want: toBytes(want)}
	for i := 0; i+3 < len(pixels); i += 4 {
		got := [4]byte{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]}
		if got == res.Want {
			continue
		}
		if res.Mismatched == 0 {
			p := i / 4
			res.First = [2]int{p % width, p / width}
			res.Got = got
		}
		res.Mismatched++
	}
	return res
}

func toBytes(c mgl32.Vec4) [4]byte {
	var out [4]byte
	for i, v := range c {
		out[i] = byte(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return out
}
