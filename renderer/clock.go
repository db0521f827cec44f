package renderer

import "time"

// MaxFrameDelta caps the time step of one frame in seconds, so a stalled or
// backgrounded window does not jump the animation forward.
const MaxFrameDelta = 0.1

// DeltaSource yields the elapsed time for each frame.
type DeltaSource interface {
	Delta() float64
}

// Clock measures real time between calls to Delta.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
}

// NewClock returns a clock reading now, or the wall clock when now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Delta returns the seconds since the previous call, clamped to
// MaxFrameDelta. The first call starts the clock and returns 0.
func (c *Clock) Delta() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	d := t.Sub(c.last).Seconds()
	c.last = t
	return clampDelta(d)
}

// FixedStep advances by the same step every frame, for offline rendering.
type FixedStep float64

// StepForFPS returns the fixed step of a frame rate.
func StepForFPS(fps int) FixedStep {
	return FixedStep(1 / float64(fps))
}

func (s FixedStep) Delta() float64 { return clampDelta(float64(s)) }

func clampDelta(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > MaxFrameDelta {
		return MaxFrameDelta
	}
	return d
}
