package trail

import (
	"image"
	"image/color"
	"math"
)

const (
	// easeIn is the fraction of a point's life spent fading in.
	easeIn = 0.3

	// softSteps is the number of concentric discs stacked to build the soft
	// edge of a blob.
	softSteps = 6
)

// Intensity is the brightness envelope of a point: a sine ease-in over the
// first 30% of its life, a quadratic ease-out over the rest, scaled by force.
func Intensity(age, maxAge int, force float64) float64 {
	a := float64(age)
	ramp := float64(maxAge) * easeIn

	var v float64
	if a < ramp {
		v = math.Sin((a / ramp) * (math.Pi / 2))
	} else {
		k := 1 - (a-ramp)/(float64(maxAge)*(1-easeIn))
		v = -(k * (k - 2))
	}
	return v * force
}

// Encode maps a direction in [-1,1] and an intensity to the blob color and
// its alpha.
func Encode(vx, vy, intensity float64) color.NRGBA {
	return color.NRGBA{
		R: channel((vx + 1) / 2),
		G: channel((vy + 1) / 2),
		B: channel(intensity),
		A: channel(0.2 * intensity),
	}
}

func channel(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (t *Texture) drawPoint(p TouchPoint) {
	x := p.X * float64(t.width)
	y := (1 - p.Y) * float64(t.height)

	intensity := Intensity(p.Age, t.maxAge, p.Force)
	c := Encode(p.VX, p.VY, intensity)
	if c.A == 0 {
		return
	}
	t.softDisc(x, y, t.radius*float64(t.width), c)
}

// softDisc composites a blurred disc of radius r centered at (x, y). The blur
// is approximated by softSteps discs spread over [r-blur, r+blur]; each layer
// gets an alpha chosen so the stacked center reaches the requested alpha.
func (t *Texture) softDisc(x, y, r float64, c color.NRGBA) {
	blur := r / 2
	alpha := float64(c.A) / 255
	layer := 1 - math.Pow(1-alpha, 1.0/softSteps)
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: channel(layer)})

	for i := 0; i < softSteps; i++ {
		rr := r - blur + 2*blur*(float64(i)+0.5)/softSteps
		t.raster.Reset(t.width, t.height)
		circle(t.raster, float32(x), float32(y), float32(rr))
		t.raster.Draw(t.img, t.img.Bounds(), src, image.Point{})
	}
}

type pather interface {
	MoveTo(x, y float32)
	CubeTo(bx, by, cx, cy, dx, dy float32)
	ClosePath()
}

func circle(z pather, x, y, r float32) {
	const k = 0.5522847498307936
	o := r * k

	z.MoveTo(x+r, y)
	z.CubeTo(x+r, y+o, x+o, y+r, x, y+r)
	z.CubeTo(x-o, y+r, x-r, y+o, x-r, y)
	z.CubeTo(x-r, y-o, x-o, y-r, x, y-r)
	z.CubeTo(x+o, y-r, x+r, y-o, x+r, y)
	z.ClosePath()
}

// Sample reads the texture the way a linear, clamp-to-edge sampler reads the
// uploaded image: (u, v) are normalized with v growing upward. The result is
// RGBA in [0,1].
func (t *Texture) Sample(u, v float64) [4]float64 {
	fx := u*float64(t.width) - 0.5
	fy := (1-v)*float64(t.height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	var out [4]float64
	for c := 0; c < 4; c++ {
		a := t.texel(x0, y0, c)
		b := t.texel(x0+1, y0, c)
		d := t.texel(x0, y0+1, c)
		e := t.texel(x0+1, y0+1, c)
		top := a + (b-a)*tx
		bottom := d + (e-d)*tx
		out[c] = top + (bottom-top)*ty
	}
	return out
}

func (t *Texture) texel(x, y, c int) float64 {
	x = min(max(x, 0), t.width-1)
	y = min(max(y, 0), t.height-1)
	return float64(t.img.Pix[y*t.img.Stride+x*4+c]) / 255
}
