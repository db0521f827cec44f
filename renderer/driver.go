package renderer

import (
	"context"
	"fmt"

	"github.com/richinsley/gogradient/gradient"
)

// TrailUpdater advances and redraws the touch trail once per frame.
type TrailUpdater interface {
	Update()
}

// Presenter draws the current state of the scene.
type Presenter interface {
	Present() error
}

// Host is the window side of the loop. EndFrame swaps buffers and delivers
// pending input events.
type Host interface {
	ShouldClose() bool
	EndFrame()
}

// Driver owns the frame cadence: each tick clamps the elapsed time, updates
// the trail and the compositor, then presents.
type Driver struct {
	trail      TrailUpdater
	compositor *gradient.Compositor
	presenter  Presenter
	host       Host
	clock      DeltaSource
	hooks      []func(delta float64)
	frames     int64
	stopped    bool
}

// NewDriver wires the loop. host may be nil when the caller drives Tick
// itself.
func NewDriver(trail TrailUpdater, compositor *gradient.Compositor, presenter Presenter, host Host, clock DeltaSource) *Driver {
	return &Driver{
		trail:      trail,
		compositor: compositor,
		presenter:  presenter,
		host:       host,
		clock:      clock,
	}
}

// OnTick registers a hook that runs at the start of every tick, before the
// trail update. Hooks act as input sources for the frame.
func (d *Driver) OnTick(f func(delta float64)) {
	d.hooks = append(d.hooks, f)
}

// Tick runs one frame. It does nothing after Stop.
func (d *Driver) Tick() error {
	if d.stopped {
		return nil
	}
	delta := d.clock.Delta()
	for _, h := range d.hooks {
		h(delta)
	}
	d.trail.Update()
	d.compositor.Update(delta)
	if err := d.presenter.Present(); err != nil {
		return fmt.Errorf("frame %d: %w", d.frames, err)
	}
	d.frames++
	return nil
}

// Run ticks until ctx is cancelled, the host asks to close, or Stop is
// called. A cancelled context is not reported as an error.
func (d *Driver) Run(ctx context.Context) error {
	for !d.stopped {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if d.host != nil && d.host.ShouldClose() {
			return nil
		}
		if err := d.Tick(); err != nil {
			return err
		}
		if d.host != nil {
			d.host.EndFrame()
		}
	}
	return nil
}

// Stop ends the loop. No tick runs after Stop returns.
func (d *Driver) Stop() { d.stopped = true }

func (d *Driver) Stopped() bool { return d.stopped }

// Frames counts completed ticks.
func (d *Driver) Frames() int64 { return d.frames }

func (d *Driver) SetTheme(isDark bool)  { d.compositor.SetTheme(isDark) }
func (d *Driver) SetPaused(paused bool) { d.compositor.SetPaused(paused) }
