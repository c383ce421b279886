package profiling

import (
	"log/slog"
	"time"
)

// FPSCounter averages frame times over a fixed window and reports once per window
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int
	fps    float64

	// Verbose adds the heaviest tracked buckets of the reporting frame to each report
	Verbose bool
	logger  *slog.Logger
}

// NewFPSCounter creates a counter reporting every window through logger, or slog.Default when nil
func NewFPSCounter(window time.Duration, logger *slog.Logger) *FPSCounter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FPSCounter{window: window, logger: logger}
}

// Frame records one frame at now and reports whether a new average was computed
func (c *FPSCounter) Frame(now time.Time) bool {
	if c.start.IsZero() {
		c.start = now
		return false
	}
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < c.window {
		return false
	}

	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now

	if c.Verbose {
		c.logger.Info("frame stats",
			"fps", c.fps,
			"frame_ms", 1000/c.fps,
			"top", TopN(5),
		)
	}
	return true
}

// FPS returns the last computed average
func (c *FPSCounter) FPS() float64 {
	return c.fps
}
