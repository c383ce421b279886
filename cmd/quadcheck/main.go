// Command quadcheck renders the unit quad through a constant-colour fragment
// shader into an offscreen-sized window and verifies every pixel read back.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	vert := flag.String("vert", "shader/main_vert.glsl", "vertex shader source")
	frag := flag.String("frag", "shader/constant_frag.glsl", "fragment shader declaring a vec4 'color' uniform")
	width := flag.Int("width", 64, "framebuffer width")
	height := flag.Int("height", 64, "framebuffer height")
	show := flag.Bool("show", false, "show the window while rendering")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := glfw.Init(); err != nil {
		closer.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	window, err := openWindow(*width, *height, *show)
	if err != nil {
		closer.Fatalln(err)
	}
	defer window.Destroy()

	want := mgl32.Vec4{1, 0, 1, 1}
	res, err := Check(window, *vert, *frag, want)
	if err != nil {
		closer.Fatalln(err)
	}
	if res.Mismatched > 0 {
		closer.Fatalln(fmt.Sprintf("%d of %d pixels differ, first at (%d,%d): got %v want %v",
			res.Mismatched, res.Pixels, res.First[0], res.First[1], res.Got, res.Want))
	}
	slog.Info("quad check passed", "pixels", res.Pixels, "color", res.Want)
	closer.Close()
}
