package app

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/richinsley/gogradient/cursor"
	"github.com/richinsley/gogradient/gradient"
	"github.com/richinsley/gogradient/scramble"
	"github.com/richinsley/gogradient/trail"
)

type fakeScene struct{}

type fakePlane struct{}

func (fakePlane) Dispose() {}

func (fakeScene) ViewSize() gradient.Size                         { return gradient.Size{Width: 1, Height: 1} }
func (fakeScene) NewPlane(w, h float64) (gradient.Geometry, error) { return fakePlane{}, nil }
func (fakeScene) SetBackground(gradient.Color)                     {}

type fakeView struct {
	sizes     [][2]int
	err       error
	ring, dot cursor.Position
	visible   bool
}

func (v *fakeView) Resize(w, h int) error {
	v.sizes = append(v.sizes, [2]int{w, h})
	return v.err
}

func (v *fakeView) SetCursor(ring, dot cursor.Position, visible bool) {
	v.ring, v.dot, v.visible = ring, dot, visible
}

type fakeWindow struct {
	FixedWindow
	titles []string
}

func (w *fakeWindow) SetTitle(title string) {
	w.titles = append(w.titles, title)
	w.FixedWindow.SetTitle(title)
}

func newTestApp(t *testing.T, cfg Config) (*App, *fakeView, *fakeWindow) {
	t.Helper()
	comp := gradient.NewCompositor(fakeScene{})
	if err := comp.Init(); err != nil {
		t.Fatal(err)
	}
	view := &fakeView{}
	win := &fakeWindow{FixedWindow: FixedWindow{Width: 800, Height: 400}}
	cfg.Compositor = comp
	if cfg.Trail == nil {
		cfg.Trail = trail.New()
	}
	cfg.View = view
	cfg.Window = win
	return New(cfg), view, win
}

func TestPointerMovedNormalizesAndFlips(t *testing.T) {
	tex := trail.New()
	a, _, _ := newTestApp(t, Config{Trail: tex, Dark: true})

	a.PointerMoved(200, 100)
	pts := tex.Points()
	if len(pts) != 1 {
		t.Fatalf("trail has %d points, want 1", len(pts))
	}
	if pts[0].X != 0.25 || pts[0].Y != 0.75 {
		t.Errorf("point = (%v, %v), want (0.25, 0.75)", pts[0].X, pts[0].Y)
	}
	if last, ok := tex.Last(); !ok || last != (trail.Point{X: 0.25, Y: 0.75}) {
		t.Errorf("Last = %+v, %v", last, ok)
	}
}

func TestPointerMovedIgnoresEmptyWindow(t *testing.T) {
	tex := trail.New()
	a, _, win := newTestApp(t, Config{Trail: tex})
	win.Width = 0
	a.PointerMoved(10, 10)
	if tex.Len() != 0 {
		t.Errorf("trail has %d points, want 0", tex.Len())
	}
}

func TestCursorFollowsPointer(t *testing.T) {
	a, view, _ := newTestApp(t, Config{})

	a.Step(0.016)
	if view.visible {
		t.Error("cursor visible before any pointer event")
	}

	a.PointerMoved(100, 100)
	a.Step(0.016)
	if !view.visible {
		t.Error("cursor hidden after a pointer event")
	}
	if view.ring != (cursor.Position{X: 100, Y: 100}) {
		t.Errorf("ring = %+v, want it placed on the first pointer position", view.ring)
	}

	a.PointerMoved(200, 100)
	a.Step(0.016)
	if math.Abs(view.ring.X-112) > 1e-9 || math.Abs(view.dot.X-130) > 1e-9 {
		t.Errorf("ring.x = %v dot.x = %v, want 112 and 130", view.ring.X, view.dot.X)
	}
}

func TestTogglePause(t *testing.T) {
	a, _, _ := newTestApp(t, Config{})
	if !a.Playing() {
		t.Fatal("app should start playing")
	}
	a.TogglePause()
	if a.Playing() || !a.compositor.Paused() {
		t.Error("TogglePause did not pause the compositor")
	}
	a.TogglePause()
	if !a.Playing() || a.compositor.Paused() {
		t.Error("second TogglePause did not resume")
	}
}

func TestStartPaused(t *testing.T) {
	a, _, _ := newTestApp(t, Config{Paused: true})
	if a.Playing() || !a.compositor.Paused() {
		t.Error("Paused config not applied")
	}
}

func TestToggleTheme(t *testing.T) {
	a, _, _ := newTestApp(t, Config{Dark: true})
	a.ToggleTheme()
	if a.Dark() || a.compositor.IsDark() {
		t.Error("ToggleTheme did not switch to light")
	}
	if got := a.compositor.Uniforms().DarkNavy; got != gradient.LightPalette().Base {
		t.Errorf("base = %+v", got)
	}
	a.ToggleTheme()
	if !a.Dark() || !a.compositor.IsDark() {
		t.Error("ToggleTheme did not switch back to dark")
	}
}

func TestResized(t *testing.T) {
	a, view, _ := newTestApp(t, Config{})
	a.Resized(1024, 768)
	view.err = errors.New("no memory")
	a.Resized(10, 10)
	if len(view.sizes) != 2 || view.sizes[0] != [2]int{1024, 768} {
		t.Errorf("resizes = %v", view.sizes)
	}
}

func TestTitleScramblesAfterDelay(t *testing.T) {
	s := scramble.New(rand.New(rand.NewPCG(4, 2)))
	a, _, win := newTestApp(t, Config{Scrambler: s, Title: "Gradient"})

	// 1.2s of waiting at 0.1s per frame.
	for i := 0; i < 11; i++ {
		a.Step(0.1)
	}
	if len(win.titles) != 0 {
		t.Fatalf("title changed during the delay: %v", win.titles)
	}

	// The twelfth frame reaches 1.2s and starts the scramble.
	a.Step(0.1)
	if len(win.titles) != 1 {
		t.Fatalf("scramble did not start at 1.2s, titles %v", win.titles)
	}
	if s.Done() {
		t.Fatal("scramble finished on its first frame")
	}

	for i := 0; i < 200 && !s.Done(); i++ {
		a.Step(0.1)
	}
	if !s.Done() {
		t.Fatal("scramble never finished")
	}
	if win.Title != "Gradient" {
		t.Errorf("final title %q", win.Title)
	}
	if len(win.titles) < 2 {
		t.Errorf("title only changed %d times", len(win.titles))
	}
}

func TestRestartTitle(t *testing.T) {
	s := scramble.New(rand.New(rand.NewPCG(8, 1)))
	a, _, win := newTestApp(t, Config{Scrambler: s, Title: "Gradient"})
	a.RestartTitle()
	if s.Done() {
		t.Fatal("RestartTitle did not start a transition")
	}
	for i := 0; i < 200 && !s.Done(); i++ {
		a.Step(0.016)
	}
	if win.Title != "Gradient" {
		t.Errorf("final title %q", win.Title)
	}
}

func TestAutopilotDrivesTrail(t *testing.T) {
	tex := trail.New()
	a, _, _ := newTestApp(t, Config{Trail: tex, Autopilot: NewAutopilot()})
	for i := 0; i < 30; i++ {
		a.Step(1.0 / 60)
	}
	if tex.Len() != 30 {
		t.Errorf("trail has %d points, want 30", tex.Len())
	}
	for _, p := range tex.Points() {
		if p.Force > 2 {
			t.Errorf("force %v above the cap", p.Force)
		}
	}
}
