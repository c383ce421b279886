package preview

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shadertoy/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the lifecycle stage of a Driver
type State int

const (
	Uninitialized State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// ErrNotUninitialized is returned by Start on a driver that already started
var ErrNotUninitialized = errors.New("driver already started")

// Window is the presentation surface the driver renders into
type Window interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	FramebufferSize() (width, height int)
}

// Input reports user intent gathered from window events
type Input interface {
	QuitRequested() bool
	Mouse() mgl32.Vec4
	// EndFrame clears per-frame edge state
	EndFrame()
}

// Scene draws one frame with the given uniforms
type Scene interface {
	Render(u Uniforms) error
}

// Driver runs the preview loop: each frame computes the uniforms, renders
// the scene, presents and polls events until quit is requested.
type Driver struct {
	window  Window
	input   Input
	scene   Scene
	clock   *Clock
	limiter *Limiter
	now     func() time.Time
	hooks   []func(Tick)

	state State
	last  Uniforms
}

// Option configures a Driver
type Option func(*Driver)

// WithClock replaces the default wall clock
func WithClock(c *Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithLimiter caps the frame rate
func WithLimiter(l *Limiter) Option {
	return func(d *Driver) { d.limiter = l }
}

// WithDate sets the source used for iDate
func WithDate(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithHook runs fn at the start of every frame, before rendering
func WithHook(fn func(Tick)) Option {
	return func(d *Driver) { d.hooks = append(d.hooks, fn) }
}

// NewDriver creates a driver in the Uninitialized state
func NewDriver(window Window, input Input, scene Scene, opts ...Option) *Driver {
	d := &Driver{
		window: window,
		input:  input,
		scene:  scene,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = NewClock(nil)
	}
	return d
}

// State returns the current lifecycle stage
func (d *Driver) State() State {
	return d.state
}

// Last returns the uniforms of the most recent frame
func (d *Driver) Last() Uniforms {
	return d.last
}

// Start begins the session and zeroes the clock
func (d *Driver) Start() error {
	if d.state != Uninitialized {
		return ErrNotUninitialized
	}
	d.clock.Start()
	d.state = Running
	slog.Debug("driver started")
	return nil
}

// Stop terminates the session. Further Steps do nothing.
func (d *Driver) Stop() {
	if d.state == Terminated {
		return
	}
	d.state = Terminated
	slog.Debug("driver terminated")
}

// Step runs one frame and reports whether the driver is still running.
// Quit or a close request terminates the driver before anything is drawn.
func (d *Driver) Step() bool {
	if d.state != Running {
		return false
	}
	if d.input.QuitRequested() || d.window.ShouldClose() {
		d.Stop()
		return false
	}

	profiling.ResetFrame()
	tick := d.clock.Tick()
	for _, hook := range d.hooks {
		hook(tick)
	}

	width, height := d.window.FramebufferSize()
	d.last = NewUniforms(width, height, tick, d.input.Mouse(), d.now())

	stop := profiling.Track("preview.Render")
	if err := d.scene.Render(d.last); err != nil {
		slog.Error("frame failed", "frame", tick.Frame, "error", err)
	}
	stop()

	d.window.SwapBuffers()
	// edges consumed this frame are cleared before the next batch of events arrives
	d.input.EndFrame()
	d.window.PollEvents()
	d.limiter.Wait()
	return true
}

// Run starts the driver if needed and loops until quit, window close or ctx cancellation.
func (d *Driver) Run(ctx context.Context) error {
	if d.state == Uninitialized {
		if err := d.Start(); err != nil {
			return err
		}
	}
	for d.state == Running {
		if err := ctx.Err(); err != nil {
			d.Stop()
			return err
		}
		d.Step()
	}
	return nil
}
