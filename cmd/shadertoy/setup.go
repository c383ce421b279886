package main

import (
	"fmt"
	"log/slog"

	"shadertoy/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupWindow(w config.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open glfw window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("failed to initialize opengl: %w", err)
	}

	// Disable V-Sync; frames are paced by the limiter or not at all
	glfw.SwapInterval(0)

	return window, nil
}

func logContext() {
	slog.Debug("opengl context",
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	)
}

// glfwWindow adapts a glfw window to the frame driver
type glfwWindow struct {
	*glfw.Window
}

func (w glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (w glfwWindow) FramebufferSize() (int, int) {
	return w.GetFramebufferSize()
}
