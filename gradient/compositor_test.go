package gradient

import (
	"errors"
	"math"
	"testing"
)

type fakePlane struct {
	width, height float64
	disposed      int
}

func (p *fakePlane) Dispose() { p.disposed++ }

type fakeScene struct {
	size       Size
	planes     []*fakePlane
	background Color
	failNext   bool
}

func (s *fakeScene) ViewSize() Size { return s.size }

func (s *fakeScene) NewPlane(w, h float64) (Geometry, error) {
	if s.failNext {
		s.failNext = false
		return nil, errors.New("out of memory")
	}
	p := &fakePlane{width: w, height: h}
	s.planes = append(s.planes, p)
	return p, nil
}

func (s *fakeScene) SetBackground(c Color) { s.background = c }

func newTestCompositor(t *testing.T) (*Compositor, *fakeScene) {
	t.Helper()
	scene := &fakeScene{size: Size{Width: 41.4, Height: 41.4}}
	c := NewCompositor(scene, WithResolution(800, 800))
	if err := c.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return c, scene
}

func TestInitAllocatesViewSizedPlane(t *testing.T) {
	c, scene := newTestCompositor(t)
	if len(scene.planes) != 1 {
		t.Fatalf("planes allocated = %d, want 1", len(scene.planes))
	}
	p := scene.planes[0]
	if p.width != 41.4 || p.height != 41.4 {
		t.Errorf("plane = %vx%v, want 41.4x41.4", p.width, p.height)
	}
	if c.Geometry() != p {
		t.Error("Geometry() does not return the allocated plane")
	}
	if scene.background != DarkPalette().Background {
		t.Errorf("background = %+v, want dark background", scene.background)
	}
}

func TestInitError(t *testing.T) {
	scene := &fakeScene{failNext: true}
	c := NewCompositor(scene)
	if err := c.Init(); err == nil {
		t.Fatal("Init() succeeded with a failing scene")
	}
}

func TestUpdateAdvancesTime(t *testing.T) {
	c, _ := newTestCompositor(t)
	c.Update(0.016)
	c.Update(0.05)
	if got := c.Uniforms().Time; math.Abs(got-0.066) > 1e-12 {
		t.Errorf("Time = %v, want 0.066", got)
	}
}

func TestPausedUpdateKeepsTime(t *testing.T) {
	c, _ := newTestCompositor(t)
	c.Update(0.5)
	c.SetPaused(true)
	for _, d := range []float64{0.016, 0.1, 3, 0} {
		c.Update(d)
		if got := c.Uniforms().Time; got != 0.5 {
			t.Fatalf("Time = %v while paused, want 0.5", got)
		}
	}
	c.SetPaused(false)
	c.Update(0.25)
	if got := c.Uniforms().Time; got != 0.75 {
		t.Errorf("Time = %v after resume, want 0.75", got)
	}
}

func TestSetTheme(t *testing.T) {
	c, scene := newTestCompositor(t)
	initial := c.Uniforms()

	c.SetTheme(false)
	light := c.Uniforms()
	lp := LightPalette()
	for i, col := range light.Colors {
		want := lp.Accent
		if i%2 == 1 {
			want = lp.Secondary
		}
		if col != want {
			t.Errorf("light color %d = %+v, want %+v", i+1, col, want)
		}
	}
	if light.DarkNavy != (Color{0.95, 0.97, 1.0}) {
		t.Errorf("light base = %+v", light.DarkNavy)
	}
	if scene.background != lp.Background {
		t.Errorf("light background = %+v, want %+v", scene.background, lp.Background)
	}

	c.SetTheme(false)
	if c.Uniforms() != light {
		t.Error("SetTheme(false) twice is not idempotent")
	}

	c.SetTheme(true)
	if got := c.Uniforms(); got != initial {
		t.Errorf("dark theme uniforms = %+v, want %+v", got, initial)
	}
	if scene.background != DarkPalette().Background {
		t.Errorf("dark background = %+v", scene.background)
	}
}

func TestSetThemeKeepsTimeAndGeometry(t *testing.T) {
	c, scene := newTestCompositor(t)
	c.Update(1.5)
	c.SetTheme(false)
	if c.Uniforms().Time != 1.5 {
		t.Error("theme switch changed the time uniform")
	}
	if len(scene.planes) != 1 || scene.planes[0].disposed != 0 {
		t.Error("theme switch touched the geometry")
	}
}

func TestOnResizeReplacesGeometry(t *testing.T) {
	c, scene := newTestCompositor(t)
	old := scene.planes[0]

	scene.size = Size{Width: 82.8, Height: 41.4}
	if err := c.OnResize(1600, 800); err != nil {
		t.Fatalf("OnResize() error: %v", err)
	}

	if old.disposed != 1 {
		t.Errorf("old plane disposed %d times, want 1", old.disposed)
	}
	if len(scene.planes) != 2 {
		t.Fatalf("planes allocated = %d, want 2", len(scene.planes))
	}
	p := scene.planes[1]
	if p.width != 82.8 || p.height != 41.4 {
		t.Errorf("new plane = %vx%v", p.width, p.height)
	}
	if c.Geometry() != p {
		t.Error("Geometry() is not the new plane")
	}
	if got := c.Uniforms().Resolution; got != (Vec2{1600, 800}) {
		t.Errorf("Resolution = %+v, want (1600, 800)", got)
	}
}

func TestOnResizeError(t *testing.T) {
	c, scene := newTestCompositor(t)
	scene.failNext = true
	if err := c.OnResize(10, 10); err == nil {
		t.Fatal("OnResize() succeeded with a failing scene")
	}
	if scene.planes[0].disposed != 1 {
		t.Error("old plane should be released even when reallocation fails")
	}
	if c.Geometry() != nil {
		t.Error("Geometry() should be nil after a failed reallocation")
	}
}

func TestDispose(t *testing.T) {
	c, scene := newTestCompositor(t)
	c.Dispose()
	c.Dispose()
	if scene.planes[0].disposed != 1 {
		t.Errorf("plane disposed %d times, want 1", scene.planes[0].disposed)
	}
}

func TestCustomPalettes(t *testing.T) {
	accent, err := ParseColor("#00ff00")
	if err != nil {
		t.Fatal(err)
	}
	dark := DarkPalette()
	dark.Accent = accent
	c := NewCompositor(&fakeScene{}, WithPalettes(dark, LightPalette()))
	if got := c.Uniforms().Colors[0]; got != (Color{0, 1, 0}) {
		t.Errorf("color 1 = %+v, want green", got)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a0e27")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	want := Color{10.0 / 255, 14.0 / 255, 39.0 / 255}
	if math.Abs(c.R-want.R) > 1e-9 || math.Abs(c.G-want.G) > 1e-9 || math.Abs(c.B-want.B) > 1e-9 {
		t.Errorf("ParseColor = %+v, want %+v", c, want)
	}
	if _, err := ParseColor("not a color"); err == nil {
		t.Error("ParseColor accepted garbage")
	}
}
