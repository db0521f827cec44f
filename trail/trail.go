package trail

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	defaultSize      = 64
	defaultMaxAge    = 64
	defaultRadius    = 0.1
	defaultMaxPoints = 256

	// forceScale turns the squared pointer displacement into a force; the
	// result saturates at maxForce.
	forceScale = 20000.0
	maxForce   = 2.0
)

// Point is a pointer sample in normalized surface coordinates. Y grows upward.
type Point struct {
	X, Y float64
}

// TouchPoint is one decaying trail sample.
type TouchPoint struct {
	X, Y   float64
	Age    int
	Force  float64
	VX, VY float64
}

// Texture keeps the trail of recent pointer samples and rasterizes them into a
// small RGBA image every frame. Red and green encode the direction of motion,
// blue encodes the intensity.
type Texture struct {
	width     int
	height    int
	maxAge    int
	radius    float64
	speed     float64
	maxPoints int

	trail []TouchPoint
	last  *Point

	img    *image.RGBA
	raster *vector.Rasterizer
	dirty  bool
}

// Option configures a Texture.
type Option func(*Texture)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(t *Texture) {
		t.width = width
		t.height = height
	}
}

// WithMaxAge sets the lifetime of a point in frames. The base speed follows it.
// Zero or less keeps the default.
func WithMaxAge(frames int) Option {
	return func(t *Texture) {
		if frames <= 0 {
			return
		}
		t.maxAge = frames
		t.speed = 1 / float64(frames)
	}
}

// WithRadius sets the blob radius as a fraction of the image width.
func WithRadius(r float64) Option {
	return func(t *Texture) {
		t.radius = r
	}
}

// WithMaxPoints bounds the number of points alive at once. Zero or less
// disables the bound.
func WithMaxPoints(n int) Option {
	return func(t *Texture) {
		t.maxPoints = n
	}
}

// New creates a trail texture cleared to black.
func New(opts ...Option) *Texture {
	t := &Texture{
		width:     defaultSize,
		height:    defaultSize,
		maxAge:    defaultMaxAge,
		radius:    defaultRadius,
		speed:     1.0 / defaultMaxAge,
		maxPoints: defaultMaxPoints,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.img = image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	t.raster = vector.NewRasterizer(t.width, t.height)
	t.clear()
	t.dirty = true
	return t
}

// AddTouch records a new pointer sample. A sample at exactly the previous
// position is ignored.
func (t *Texture) AddTouch(p Point) {
	var force, vx, vy float64

	if t.last != nil {
		dx := p.X - t.last.X
		dy := p.Y - t.last.Y
		if dx == 0 && dy == 0 {
			return
		}
		d2 := dx*dx + dy*dy
		d := math.Sqrt(d2)
		vx = dx / d
		vy = dy / d
		force = math.Min(d2*forceScale, maxForce)
	}

	t.last = &Point{X: p.X, Y: p.Y}

	if t.maxPoints > 0 && len(t.trail) >= t.maxPoints {
		// oldest first
		copy(t.trail, t.trail[1:])
		t.trail = t.trail[:len(t.trail)-1]
	}
	t.trail = append(t.trail, TouchPoint{X: p.X, Y: p.Y, Force: force, VX: vx, VY: vy})
}

// Update advances every point by one frame and repaints the image.
func (t *Texture) Update() {
	t.clear()

	for i := len(t.trail) - 1; i >= 0; i-- {
		p := &t.trail[i]
		f := p.Force * t.speed * (1 - float64(p.Age)/float64(t.maxAge))
		p.X += p.VX * f
		p.Y += p.VY * f
		p.Age++

		if p.Age > t.maxAge {
			t.trail = append(t.trail[:i], t.trail[i+1:]...)
			continue
		}
		t.drawPoint(*p)
	}

	t.dirty = true
}

// Reset drops every point and the last pointer sample.
func (t *Texture) Reset() {
	t.trail = t.trail[:0]
	t.last = nil
	t.clear()
	t.dirty = true
}

func (t *Texture) clear() {
	draw.Draw(t.img, t.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// Len returns the number of live points.
func (t *Texture) Len() int { return len(t.trail) }

// Points returns a copy of the live points.
func (t *Texture) Points() []TouchPoint {
	out := make([]TouchPoint, len(t.trail))
	copy(out, t.trail)
	return out
}

// Last returns the last accepted pointer sample.
func (t *Texture) Last() (Point, bool) {
	if t.last == nil {
		return Point{}, false
	}
	return *t.last, true
}

func (t *Texture) MaxAge() int { return t.maxAge }
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Image returns the backing image. Row 0 is the top of the surface.
func (t *Texture) Image() *image.RGBA { return t.img }

// Pixels returns the backing RGBA bytes, top row first.
func (t *Texture) Pixels() []byte { return t.img.Pix }

// Dirty reports whether the image changed since the last ClearDirty.
func (t *Texture) Dirty() bool { return t.dirty }

// ClearDirty marks the image as uploaded.
func (t *Texture) ClearDirty() { t.dirty = false }
