package app

import (
	"math"

	"github.com/richinsley/gogradient/trail"
)

// Autopilot moves a virtual pointer along a Lissajous curve so the trail
// has something to follow when nobody is at the mouse.
type Autopilot struct {
	t      float64
	FreqX  float64
	FreqY  float64
	Phase  float64
	AmpX   float64
	AmpY   float64
	Center trail.Point
}

func NewAutopilot() *Autopilot {
	return &Autopilot{
		FreqX:  0.9,
		FreqY:  1.3,
		Phase:  0.5,
		AmpX:   0.35,
		AmpY:   0.3,
		Center: trail.Point{X: 0.5, Y: 0.5},
	}
}

// At returns the position at time t in normalized coordinates, y up.
func (a *Autopilot) At(t float64) trail.Point {
	return trail.Point{
		X: a.Center.X + a.AmpX*math.Sin(t*a.FreqX),
		Y: a.Center.Y + a.AmpY*math.Sin(t*a.FreqY+a.Phase),
	}
}

// Next advances by delta seconds and returns the new position.
func (a *Autopilot) Next(delta float64) trail.Point {
	a.t += delta
	return a.At(a.t)
}
