package gradient

import (
	"fmt"
	"math"

	css "github.com/mazznoer/csscolorparser"
)

// Color is a linear RGB triple in [0,1].
type Color struct {
	R, G, B float64
}

// Vec2 is a 2D vector in shader units.
type Vec2 struct {
	X, Y float64
}

// Size is the extent of the visible area at the background plane's depth.
type Size struct {
	Width, Height float64
}

// ParseColor accepts any CSS color string ("#0a0e27", "rgb(100% 50% 35%)", ...).
// Alpha is ignored.
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

func mustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) add(o Color) Color         { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) scale(k float64) Color     { return Color{c.R * k, c.G * k, c.B * k} }
func (c Color) addScalar(k float64) Color { return Color{c.R + k, c.G + k, c.B + k} }

func (c Color) clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func (c Color) length() float64 {
	return math.Sqrt(c.R*c.R + c.G*c.G + c.B*c.B)
}

// Luminance uses the Rec. 601 weights the shader uses.
func (c Color) Luminance() float64 {
	return c.R*0.299 + c.G*0.587 + c.B*0.114
}

func mixColor(a, b Color, t float64) Color {
	return Color{mix(a.R, b.R, t), mix(a.G, b.G, t), mix(a.B, b.B, t)}
}

func (v Vec2) sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) length() float64 { return math.Hypot(v.X, v.Y) }

func mix(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func fract(x float64) float64 { return x - math.Floor(x) }
