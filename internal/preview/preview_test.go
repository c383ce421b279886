package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	closeAfter int // frames presented before ShouldClose reports true; 0 never closes
	swaps      int
	polls      int
	width      int
	height     int
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closeAfter > 0 && w.swaps >= w.closeAfter
}
func (w *fakeWindow) SwapBuffers()                { w.swaps++ }
func (w *fakeWindow) PollEvents()                 { w.polls++ }
func (w *fakeWindow) FramebufferSize() (int, int) { return w.width, w.height }

type fakeInput struct {
	quit   bool
	mouse  mgl32.Vec4
	frames int
}

func (in *fakeInput) QuitRequested() bool { return in.quit }
func (in *fakeInput) Mouse() mgl32.Vec4   { return in.mouse }
func (in *fakeInput) EndFrame()           { in.frames++ }

type recordingScene struct {
	frames []Uniforms
	fail   map[int]error
}

func (s *recordingScene) Render(u Uniforms) error {
	s.frames = append(s.frames, u)
	return s.fail[len(s.frames)-1]
}

// steppedTime returns a time source that yields the given offsets from a fixed origin in turn
func steppedTime(offsets ...time.Duration) func() time.Time {
	origin := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		off := offsets[len(offsets)-1]
		if i < len(offsets) {
			off = offsets[i]
		}
		i++
		return origin.Add(off)
	}
}

func TestClockNeverGoesBackwards(t *testing.T) {
	c := NewClock(steppedTime(0, time.Second, 3*time.Second, 2*time.Second, 500*time.Millisecond, 4*time.Second))
	c.Start()

	var prev float64
	for i := 0; i < 5; i++ {
		tick := c.Tick()
		assert.GreaterOrEqual(t, tick.Elapsed, prev, "frame %d", i)
		assert.GreaterOrEqual(t, tick.Delta, 0.0)
		assert.Equal(t, i, tick.Frame)
		prev = tick.Elapsed
	}
	assert.InDelta(t, 4.0, prev, 1e-9)
}

func TestClockStartsOnFirstTick(t *testing.T) {
	c := NewClock(steppedTime(time.Second, 2*time.Second))
	tick := c.Tick()
	assert.InDelta(t, 1.0, tick.Elapsed, 1e-9)
	assert.Equal(t, 0, tick.Frame)
}

type setterCall struct {
	name  string
	value any
}

type recordingSetter struct {
	calls []setterCall
}

func (r *recordingSetter) SetFloat(name string, v float32) {
	r.calls = append(r.calls, setterCall{name, v})
}
func (r *recordingSetter) SetInt(name string, v int32) {
	r.calls = append(r.calls, setterCall{name, v})
}
func (r *recordingSetter) SetVector3(name string, v mgl32.Vec3) {
	r.calls = append(r.calls, setterCall{name, v})
}
func (r *recordingSetter) SetVector4(name string, v mgl32.Vec4) {
	r.calls = append(r.calls, setterCall{name, v})
}

func (r *recordingSetter) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.name
	}
	return out
}

func TestUniformsApply(t *testing.T) {
	now := time.Date(2024, 3, 9, 1, 2, 3, 0, time.UTC)
	u := NewUniforms(800, 600, Tick{Elapsed: 2.5, Delta: 0.02, Frame: 7}, mgl32.Vec4{1, 2, -3, -4}, now)

	var basic recordingSetter
	u.Apply(&basic, false)
	assert.Equal(t, []string{"iResolution", "iTime"}, basic.names())
	assert.Equal(t, mgl32.Vec3{800, 600, 0}, basic.calls[0].value)
	assert.Equal(t, float32(2.5), basic.calls[1].value)

	var full recordingSetter
	u.Apply(&full, true)
	assert.Equal(t, []string{"iResolution", "iTime", "iTimeDelta", "iFrameRate", "iFrame", "iMouse", "iDate"}, full.names())
	assert.InDelta(t, 50.0, u.FrameRate, 1e-3)
	assert.Equal(t, int32(7), u.Frame)
	assert.Equal(t, mgl32.Vec4{2024, 2, 9, 3723}, u.Date)
}

func TestUniformsZeroDelta(t *testing.T) {
	u := NewUniforms(1, 1, Tick{}, mgl32.Vec4{}, time.Now())
	assert.Zero(t, u.FrameRate)
}

func TestDriverLifecycle(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	in := &fakeInput{}
	scene := &recordingScene{}
	d := NewDriver(w, in, scene)

	assert.Equal(t, Uninitialized, d.State())
	assert.False(t, d.Step(), "step before start must not render")
	assert.Empty(t, scene.frames)

	require.NoError(t, d.Start())
	assert.Equal(t, Running, d.State())
	assert.ErrorIs(t, d.Start(), ErrNotUninitialized)

	assert.True(t, d.Step())
	assert.True(t, d.Step())
	assert.Len(t, scene.frames, 2)
	assert.Equal(t, 2, w.swaps)
	assert.Equal(t, 2, w.polls)
	assert.Equal(t, 2, in.frames)

	in.quit = true
	assert.False(t, d.Step())
	assert.Equal(t, Terminated, d.State())
	assert.Len(t, scene.frames, 2, "quit is checked before drawing")
	assert.False(t, d.Step())
}

func TestDriverUniformsPerFrame(t *testing.T) {
	w := &fakeWindow{width: 640, height: 480, closeAfter: 4}
	in := &fakeInput{mouse: mgl32.Vec4{10, 20, 10, 20}}
	scene := &recordingScene{}
	clock := NewClock(steppedTime(0, 100*time.Millisecond, 50*time.Millisecond, 300*time.Millisecond, 200*time.Millisecond))
	d := NewDriver(w, in, scene, WithClock(clock))

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, Terminated, d.State())
	require.Len(t, scene.frames, 4)

	var prev float32
	for i, u := range scene.frames {
		assert.Equal(t, mgl32.Vec3{640, 480, 0}, u.Resolution)
		assert.GreaterOrEqual(t, u.Time, prev, "iTime went backwards at frame %d", i)
		assert.Equal(t, int32(i), u.Frame)
		assert.Equal(t, in.mouse, u.Mouse)
		prev = u.Time
	}
	assert.Equal(t, scene.frames[3], d.Last())
}

func TestDriverContinuesAfterFrameError(t *testing.T) {
	w := &fakeWindow{closeAfter: 3}
	scene := &recordingScene{fail: map[int]error{0: errors.New("boom"), 1: errors.New("boom")}}
	d := NewDriver(w, &fakeInput{}, scene)

	require.NoError(t, d.Run(context.Background()))
	assert.Len(t, scene.frames, 3)
	assert.Equal(t, 3, w.swaps)
}

func TestDriverRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var frames int
	hook := func(Tick) {
		frames++
		if frames == 2 {
			cancel()
		}
	}
	d := NewDriver(&fakeWindow{}, &fakeInput{}, &recordingScene{}, WithHook(hook))

	err := d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Terminated, d.State())
	assert.Equal(t, 2, frames)
}

func TestLimiterCapsFrameRate(t *testing.T) {
	l := NewLimiter(100)
	start := time.Now()
	for i := 0; i < 5; i++ {
		l.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestLimiterUncapped(t *testing.T) {
	var nilLimiter *Limiter
	nilLimiter.Wait()

	l := NewLimiter(0)
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 0, l.FPS())
}

type recordingText struct {
	width, height int
	lines         []string
	draws         int
}

func (r *recordingText) SetViewport(w, h int) { r.width, r.height = w, h }
func (r *recordingText) RenderLines(lines []string, x, y, scale float32, color mgl32.Vec3) {
	r.lines = lines
	r.draws++
}

func TestStatsOverlay(t *testing.T) {
	text := &recordingText{}
	missing := []string{}
	stats := &Stats{
		Text:    text,
		FPS:     func() float64 { return 59.94 },
		Missing: func() []string { return missing },
	}
	u := Uniforms{Resolution: mgl32.Vec3{800, 600, 0}, Time: 1.5, Frame: 90}

	stats.Draw(u)
	assert.Zero(t, text.draws, "hidden by default")

	stats.Visible = true
	stats.Draw(u)
	assert.Equal(t, 1, text.draws)
	assert.Equal(t, 800, text.width)
	assert.Equal(t, 600, text.height)
	assert.Equal(t, []string{"59.9 fps", "iTime 1.50  frame 90", "800x600"}, text.lines)

	missing = []string{"iMouse", "iTimeDelta"}
	assert.Equal(t, "missing iMouse iTimeDelta", stats.Lines(u)[3])
}
