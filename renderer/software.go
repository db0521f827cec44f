package renderer

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/gogpu/gg"
	"github.com/richinsley/gogradient/cursor"
	"github.com/richinsley/gogradient/gradient"
)

// TrailSampler reads the trail texture in normalized coordinates with v
// growing upward.
type TrailSampler interface {
	Sample(u, v float64) [4]float64
}

// SoftwareScene is a gradient.Scene without a GPU, used when rendering
// snapshots on the CPU.
type SoftwareScene struct {
	camera     Camera
	background gradient.Color
	planes     int
}

type softwarePlane struct {
	scene    *SoftwareScene
	disposed bool
}

func (p *softwarePlane) Dispose() {
	if !p.disposed {
		p.disposed = true
		p.scene.planes--
	}
}

func NewSoftwareScene(width, height int) *SoftwareScene {
	return &SoftwareScene{camera: NewCamera(width, height)}
}

func (s *SoftwareScene) ViewSize() gradient.Size { return s.camera.ViewSize() }

func (s *SoftwareScene) NewPlane(width, height float64) (gradient.Geometry, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid plane size %vx%v", width, height)
	}
	s.planes++
	return &softwarePlane{scene: s}, nil
}

func (s *SoftwareScene) SetBackground(c gradient.Color) { s.background = c }

func (s *SoftwareScene) Background() gradient.Color { return s.background }

// LivePlanes counts planes allocated and not yet disposed.
func (s *SoftwareScene) LivePlanes() int { return s.planes }

// Present is a no-op so a Driver can advance a software scene.
func (s *SoftwareScene) Present() error { return nil }

// RenderSoftware shades every pixel of a width x height image on the CPU.
// Rows are split across one worker per CPU.
func RenderSoftware(u gradient.Uniforms, trail TrailSampler, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rows := (height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		y0, y1 := w*rows, min((w+1)*rows, height)
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					uv := gradient.Vec2{
						X: (float64(x) + 0.5) / float64(width),
						Y: 1 - (float64(y)+0.5)/float64(height),
					}
					c := gradient.Shade(uv, &u, trail.Sample(uv.X, uv.Y))
					img.SetRGBA(x, y, color.RGBA{to8(c.R), to8(c.G), to8(c.B), 255})
				}
			}
		}()
	}
	wg.Wait()
	return img
}

func to8(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

// DrawCursor paints the ring and dot markers onto img with gg and returns
// the drawing context. Positions are in image pixels.
func DrawCursor(img image.Image, ring, dot cursor.Position, c gradient.Color) *gg.Context {
	dc := gg.NewContextForImage(img)
	dc.SetRGB(c.R, c.G, c.B)
	dc.SetLineWidth(1.5)
	dc.DrawCircle(ring.X, ring.Y, 20)
	if err := dc.Stroke(); err != nil {
		gg.Logger().Warn("cursor ring stroke failed", "err", err)
	}
	dc.DrawCircle(dot.X, dot.Y, 4)
	if err := dc.Fill(); err != nil {
		gg.Logger().Warn("cursor dot fill failed", "err", err)
	}
	return dc
}

// SaveSnapshot writes img to path as PNG, with the cursor markers drawn on
// top when withCursor is set.
func SaveSnapshot(path string, img image.Image, withCursor bool, ring, dot cursor.Position, isDark bool) error {
	var dc *gg.Context
	if withCursor {
		dc = DrawCursor(img, ring, dot, overlayColor(isDark))
	} else {
		dc = gg.NewContextForImage(img)
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}
