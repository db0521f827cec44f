package renderer

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/richinsley/gogradient/cursor"
	"github.com/richinsley/gogradient/gradient"
	"github.com/richinsley/gogradient/trail"
)

type flatTrail [4]float64

func (f flatTrail) Sample(u, v float64) [4]float64 { return f }

func TestRenderSoftwareMatchesShade(t *testing.T) {
	u := gradient.DefaultUniforms(64, 48)
	u.Time = 1.7
	img := RenderSoftware(u, flatTrail{0.5, 0.5, 0, 1}, 64, 48)

	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	for _, p := range [][2]int{{0, 0}, {63, 0}, {31, 24}, {63, 47}} {
		x, y := p[0], p[1]
		uv := gradient.Vec2{X: (float64(x) + 0.5) / 64, Y: 1 - (float64(y)+0.5)/48}
		c := gradient.Shade(uv, &u, [4]float64{0.5, 0.5, 0, 1})
		want := color.RGBA{to8(c.R), to8(c.G), to8(c.B), 255}
		if got := img.RGBAAt(x, y); got != want {
			t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
		}
	}
}

func TestRenderSoftwareSingleRow(t *testing.T) {
	u := gradient.DefaultUniforms(16, 1)
	img := RenderSoftware(u, flatTrail{}, 16, 1)
	for x := 0; x < 16; x++ {
		if img.RGBAAt(x, 0).A != 255 {
			t.Fatalf("pixel %d left unshaded", x)
		}
	}
}

func TestSoftwareSceneTracksPlanes(t *testing.T) {
	scene := NewSoftwareScene(800, 600)
	comp := gradient.NewCompositor(scene)
	if err := comp.Init(); err != nil {
		t.Fatal(err)
	}
	if err := comp.OnResize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if scene.LivePlanes() != 1 {
		t.Errorf("live planes = %d after resize, want 1", scene.LivePlanes())
	}
	comp.SetTheme(false)
	if scene.Background() != gradient.LightPalette().Background {
		t.Errorf("background = %+v", scene.Background())
	}
	comp.Dispose()
	if scene.LivePlanes() != 0 {
		t.Errorf("live planes = %d after dispose, want 0", scene.LivePlanes())
	}
	if _, err := scene.NewPlane(0, 1); err == nil {
		t.Error("NewPlane accepted an empty plane")
	}
}

func TestTrailDistortsSnapshot(t *testing.T) {
	tex := trail.New()
	tex.AddTouch(trail.Point{X: 0.2, Y: 0.5})
	tex.AddTouch(trail.Point{X: 0.25, Y: 0.5})
	// The blob drifts right to about x = 0.54 while fading in.
	for i := 0; i < 10; i++ {
		tex.Update()
	}

	u := gradient.DefaultUniforms(64, 64)
	u.GrainIntensity = 0
	u.Time = 2
	calm := RenderSoftware(u, flatTrail{0.5, 0.5, 0, 1}, 64, 64)
	moved := RenderSoftware(u, tex, 64, 64)

	if calm.RGBAAt(34, 32) == moved.RGBAAt(34, 32) {
		t.Error("pixel under the touch point is unchanged")
	}
	if calm.RGBAAt(2, 2) != moved.RGBAAt(2, 2) {
		t.Error("pixel far from the touch point changed")
	}
}

func TestSaveSnapshot(t *testing.T) {
	u := gradient.DefaultUniforms(80, 60)
	img := RenderSoftware(u, flatTrail{}, 80, 60)
	path := filepath.Join(t.TempDir(), "frame.png")
	err := SaveSnapshot(path, img, true, cursor.Position{X: 40, Y: 30}, cursor.Position{X: 40, Y: 30}, true)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := SaveSnapshot(filepath.Join(t.TempDir(), "missing", "frame.png"), img, false, cursor.Position{}, cursor.Position{}, true); err == nil {
		t.Error("SaveSnapshot into a missing directory succeeded")
	}
}

func TestEncoderArgs(t *testing.T) {
	in, out := encoderArgs("linux", 1280, 720, 60)
	if in["f"] != "rawvideo" || in["pix_fmt"] != "rgba" || in["s"] != "1280x720" || in["framerate"] != 60 {
		t.Errorf("input args = %v", in)
	}
	if out["c:v"] != "libx264" || out["pix_fmt"] != "yuv420p" {
		t.Errorf("linux output args = %v", out)
	}
	_, out = encoderArgs("darwin", 1280, 720, 30)
	if out["c:v"] != "h264_videotoolbox" || out["pix_fmt"] != "yuv420p" {
		t.Errorf("darwin output args = %v", out)
	}
}
