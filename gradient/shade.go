package gradient

import "math"

// blob describes one animated color source: the orbit of its center and the
// pulse of its brightness, as multiples of the speed uniform.
type blob struct {
	// center.x uses sin when sinX is set, cos otherwise; center.y the other.
	sinX         bool
	fx, fy       float64
	radius       float64
	pulse        float64
	pulseWithSin bool
}

var blobs = [6]blob{
	{sinX: true, fx: 0.4, fy: 0.5, radius: 0.4, pulse: 1.0, pulseWithSin: true},
	{sinX: false, fx: 0.6, fy: 0.45, radius: 0.5, pulse: 1.2},
	{sinX: true, fx: 0.35, fy: 0.55, radius: 0.45, pulse: 0.8, pulseWithSin: true},
	{sinX: false, fx: 0.5, fy: 0.4, radius: 0.4, pulse: 1.3},
	{sinX: true, fx: 0.7, fy: 0.6, radius: 0.35, pulse: 1.1, pulseWithSin: true},
	{sinX: false, fx: 0.45, fy: 0.65, radius: 0.5, pulse: 0.9},
}

// BlobCenters returns the six blob centers at time t.
func BlobCenters(t, speed float64) [6]Vec2 {
	var out [6]Vec2
	for i, b := range blobs {
		ax, ay := t*speed*b.fx, t*speed*b.fy
		if b.sinX {
			out[i] = Vec2{0.5 + math.Sin(ax)*b.radius, 0.5 + math.Cos(ay)*b.radius}
		} else {
			out[i] = Vec2{0.5 + math.Cos(ax)*b.radius, 0.5 + math.Sin(ay)*b.radius}
		}
	}
	return out
}

// GradientColor evaluates the blob field at uv.
func GradientColor(uv Vec2, t float64, u *Uniforms) Color {
	centers := BlobCenters(t, u.Speed)

	var c Color
	for i, b := range blobs {
		falloff := 1 - smoothstep(0, u.GradientSize, uv.sub(centers[i]).length())

		var wave float64
		if b.pulseWithSin {
			wave = math.Sin(t * u.Speed * b.pulse)
		} else {
			wave = math.Cos(t * u.Speed * b.pulse)
		}

		weight := u.Color1Weight
		if i%2 == 1 {
			weight = u.Color2Weight
		}
		c = c.add(u.Colors[i].scale(falloff * (0.55 + 0.45*wave) * weight))
	}

	c = c.clamp().scale(u.Intensity)
	lum := c.Luminance()
	c = mixColor(Color{lum, lum, lum}, c, 1.35)
	c = Color{pow(c.R, 0.92), pow(c.G, 0.92), pow(c.B, 0.92)}
	brightness := c.length()
	return mixColor(u.DarkNavy, c, math.Max(brightness*1.2, 0.15))
}

// pow clamps negative bases to zero; the saturation boost can push a channel
// below zero and the GLSL pow is undefined there.
func pow(x, y float64) float64 {
	return math.Pow(math.Max(x, 0), y)
}

// Grain is the per-pixel noise term in [-1, 1).
func Grain(uv Vec2, t float64, res Vec2) float64 {
	px := uv.X*res.X*0.5 + t
	py := uv.Y*res.Y*0.5 + t
	return fract(math.Sin(px*12.9898+py*78.233)*43758.5453)*2 - 1
}

// Shade is the CPU reference of the gradient fragment shader. touch is the
// trail texture sampled at uv, RGBA in [0,1].
func Shade(uv Vec2, u *Uniforms, touch [4]float64) Color {
	t := u.Time

	uv.X -= (touch[0]*2 - 1) * 0.8 * touch[2]
	uv.Y -= (touch[1]*2 - 1) * 0.8 * touch[2]

	dist := uv.sub(Vec2{0.5, 0.5}).length()
	ripple := math.Sin(dist*20-t*3) * 0.04 * touch[2]
	uv.X += ripple
	uv.Y += ripple

	c := GradientColor(uv, t, u)
	c = c.addScalar(Grain(uv, t, u.Resolution) * u.GrainIntensity)
	return c.clamp()
}
