package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"shadertoy/internal/config"
	"shadertoy/internal/graphics"
	"shadertoy/internal/input"
	"shadertoy/internal/mesh"
	"shadertoy/internal/preview"
	"shadertoy/internal/profiling"
	"shadertoy/internal/watch"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	settings, err := config.Parse("shadertoy", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	setupLogging(settings.Verbose)
	if err != nil {
		closer.Fatalln(err)
	}

	if err := run(settings); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func run(s config.Settings) error {
	slog.Info("init opengl and window context")
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(s.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()
	logContext()
	slog.Info("init success")

	m := loadMesh(s.Mesh, s.Attributes)
	model := graphics.NewModel(&m, s.Attributes)
	defer model.Delete()

	diag := graphics.NewDiagnostics(nil)
	shader := graphics.NewShader(s.Vertex, s.Fragment, diag)
	defer shader.Delete()

	channels := graphics.NewChannels()
	defer channels.Delete()
	for i, path := range s.Channels {
		if err := channels.Load(i, path); err != nil {
			slog.Warn("channel texture not loaded", "channel", i, "path", path, "error", err)
		}
	}

	im := input.NewManager()
	im.SetCallbacks(window)

	var watcher *watch.Watcher
	if s.Watch {
		watcher, err = watch.New(shader.Paths())
		if err != nil {
			slog.Warn("shader hot reload disabled", "error", err)
		} else {
			closer.Bind(func() { watcher.Close() })
		}
	}

	fps := profiling.NewFPSCounter(time.Second, nil)
	stats := &preview.Stats{FPS: fps.FPS, Missing: diag.Missing}
	if atlas, err := graphics.BuildAtlas(graphics.DefaultFont(), 16); err != nil {
		slog.Warn("stats overlay disabled", "error", err)
	} else {
		text := graphics.NewTextRenderer(atlas, nil)
		defer text.Delete()
		stats.Text = text
	}

	hook := func(preview.Tick) {
		reload := im.JustPressed(input.ActionReload)
		if watcher != nil && watcher.Pending() {
			reload = true
		}
		if reload {
			defer profiling.Track("graphics.Reload")()
			shader.Reload()
		}
		if im.JustPressed(input.ActionToggleStats) {
			stats.Visible = !stats.Visible
			fps.Verbose = stats.Visible
		}
		fps.Frame(time.Now())
	}

	scene := &preview.ShaderScene{
		Shader:   shader,
		Model:    model,
		Channels: channels,
		Overlay:  stats,
		Extended: s.Extended,
		Clear:    mgl32.Vec4(s.ClearColor),
	}
	driver := preview.NewDriver(glfwWindow{window}, im, scene,
		preview.WithLimiter(preview.NewLimiter(s.FPS)),
		preview.WithHook(hook),
	)

	if err := driver.Run(context.Background()); err != nil {
		return err
	}
	slog.Info("preview closed", "seconds", driver.Last().Time)
	return nil
}

// loadMesh loads path, falling back to the built-in quad when the file is
// missing, unusable or has no geometry
func loadMesh(path string, attrs mesh.Attributes) mesh.Mesh {
	res := mesh.Load(path, attrs)
	switch {
	case res.OK() && !res.Mesh.Empty():
		slog.Info("model loaded", "path", path, "vertices", res.Mesh.VertexCount(), "triangles", res.Mesh.TriangleCount())
		return res.Mesh
	case res.Status == mesh.NotFound:
		slog.Warn("using built-in quad", "path", path)
	case res.OK():
		slog.Warn("model has no geometry, using built-in quad", "path", path)
	default:
		slog.Error("can not use model, using built-in quad", "path", path, "error", res.Err)
	}
	return mesh.Quad().Strip(attrs)
}
