package preview

import "time"

// Tick is the timing of one frame
type Tick struct {
	// Elapsed is seconds since the clock started; never decreases
	Elapsed float64
	// Delta is seconds since the previous tick
	Delta float64
	Frame int
}

// Clock measures wall-clock time since the preview started
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    float64
	frame   int
	started bool
}

// NewClock creates a clock reading now, or time.Now when now is nil
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start resets the clock to zero
func (c *Clock) Start() {
	c.start = c.now()
	c.last = 0
	c.frame = 0
	c.started = true
}

// Tick advances to the next frame. A time source stepping backwards holds the
// previous elapsed value instead of going back.
func (c *Clock) Tick() Tick {
	if !c.started {
		c.Start()
	}
	elapsed := c.now().Sub(c.start).Seconds()
	if elapsed < c.last {
		elapsed = c.last
	}
	t := Tick{Elapsed: elapsed, Delta: elapsed - c.last, Frame: c.frame}
	c.last = elapsed
	c.frame++
	return t
}
