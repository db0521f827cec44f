package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gogradient/gradient"
)

// Camera is a perspective camera on the +z axis looking at the origin, where
// the background plane sits.
type Camera struct {
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64
	Z      float64
}

// NewCamera returns the fixed scene camera for a viewport of the given size.
func NewCamera(width, height int) Camera {
	c := Camera{FOV: 45, Near: 0.1, Far: 10000, Z: 50, Aspect: 1}
	c.SetAspect(width, height)
	return c
}

// SetAspect updates the aspect ratio. A degenerate size leaves it unchanged.
func (c *Camera) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float64(width) / float64(height)
	}
}

// ViewSize is the extent of the visible area at z = 0.
func (c Camera) ViewSize() gradient.Size {
	fov := c.FOV * math.Pi / 180
	h := math.Abs(c.Z * math.Tan(fov/2) * 2)
	return gradient.Size{Width: h * c.Aspect, Height: h}
}

func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(float32(c.FOV)), float32(c.Aspect), float32(c.Near), float32(c.Far))
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -float32(c.Z))
}

// MVP is the combined transform for geometry placed at the origin.
func (c Camera) MVP() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
