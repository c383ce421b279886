package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"shadertoy/internal/mesh"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file read when -config is not given
const DefaultPath = "shadertoy.yaml"

// Window holds the preview window configuration
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Settings holds everything the preview needs to start
type Settings struct {
	Window     Window          `yaml:"window"`
	Mesh       string          `yaml:"mesh"`
	Vertex     string          `yaml:"vertex"`
	Fragment   string          `yaml:"fragment"`
	Attributes mesh.Attributes `yaml:"attributes"`
	// Channels are image files bound to iChannel0..iChannel3; empty entries stay unbound
	Channels []string `yaml:"channels"`
	// FPS caps the frame rate; 0 renders as fast as the driver allows
	FPS int `yaml:"fps"`
	// Watch rebuilds the program when a shader source changes on disk
	Watch bool `yaml:"watch"`
	// Extended sets the full ShaderToy uniform set rather than only iResolution and iTime
	Extended   bool       `yaml:"extended_uniforms"`
	ClearColor [4]float32 `yaml:"clear_color"`
	Verbose    bool       `yaml:"verbose"`
}

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "ShaderToy",
		},
		Mesh:       "quad.obj",
		Vertex:     "shader/main_vert.glsl",
		Fragment:   "shader/fire_ball_frag.glsl",
		Attributes: mesh.Attributes{UV: true},
		ClearColor: [4]float32{0.4, 0.8, 0.6, 0},
	}
}

// Load reads YAML settings from path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no settings file, using defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.Validate()
	return s, nil
}

// Validate clamps values into usable ranges and fills blanks from the defaults
func (s *Settings) Validate() {
	d := Default()

	// Clamp to reasonable values
	s.Window.Width = clamp(s.Window.Width, 64, 7680)
	s.Window.Height = clamp(s.Window.Height, 64, 4320)
	s.FPS = clamp(s.FPS, 0, 1000)

	if s.Window.Title == "" {
		s.Window.Title = d.Window.Title
	}
	if s.Mesh == "" {
		s.Mesh = d.Mesh
	}
	if s.Vertex == "" {
		s.Vertex = d.Vertex
	}
	if s.Fragment == "" {
		s.Fragment = d.Fragment
	}
	if len(s.Channels) > 4 {
		slog.Warn("only four channels are supported, ignoring the rest", "channels", len(s.Channels))
		s.Channels = s.Channels[:4]
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Parse builds settings from command-line arguments: the settings file named by
// -config (or DefaultPath) is loaded first, then every flag given explicitly
// overrides it.
func Parse(name string, args []string) (Settings, error) {
	d := Default()
	fset := flag.NewFlagSet(name, flag.ContinueOnError)

	path := fset.String("config", DefaultPath, "settings file (YAML)")
	meshPath := fset.String("mesh", d.Mesh, "mesh file (.obj, .gltf, .glb)")
	vert := fset.String("vert", d.Vertex, "vertex shader source")
	frag := fset.String("frag", d.Fragment, "fragment shader source")
	width := fset.Int("width", d.Window.Width, "window width")
	height := fset.Int("height", d.Window.Height, "window height")
	fps := fset.Int("fps", d.FPS, "frame rate cap, 0 for uncapped")
	watch := fset.Bool("watch", d.Watch, "reload shaders when their sources change")
	extended := fset.Bool("extended", d.Extended, "set every ShaderToy uniform, not only iResolution and iTime")
	verbose := fset.Bool("v", d.Verbose, "debug logging")

	if err := fset.Parse(args); err != nil {
		return d, err
	}

	s, err := Load(*path)
	if err != nil {
		return s, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mesh":
			s.Mesh = *meshPath
		case "vert":
			s.Vertex = *vert
		case "frag":
			s.Fragment = *frag
		case "width":
			s.Window.Width = *width
		case "height":
			s.Window.Height = *height
		case "fps":
			s.FPS = *fps
		case "watch":
			s.Watch = *watch
		case "extended":
			s.Extended = *extended
		case "v":
			s.Verbose = *verbose
		}
	})
	s.Validate()
	return s, nil
}
