package preview

import "time"

// Limiter caps the frame rate. A zero or negative limit leaves the loop uncapped.
type Limiter struct {
	fps  int
	next time.Time
}

// NewLimiter creates a limiter for fps frames per second
func NewLimiter(fps int) *Limiter {
	return &Limiter{fps: fps}
}

// FPS returns the configured cap
func (l *Limiter) FPS() int {
	return l.fps
}

// Wait blocks until the next frame is due.
// Sleeps most of the interval and spins the final stretch for precision.
func (l *Limiter) Wait() {
	if l == nil || l.fps <= 0 {
		return
	}

	target := time.Second / time.Duration(l.fps)

	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// resync after a hitch so the loop does not try to catch up
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}
