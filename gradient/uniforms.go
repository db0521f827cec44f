package gradient

// Uniform names shared by the fragment shader and the renderer.
const (
	UniformTime           = "uTime"
	UniformResolution     = "uResolution"
	UniformViewport       = "uViewport"
	UniformSpeed          = "uSpeed"
	UniformIntensity      = "uIntensity"
	UniformGrainIntensity = "uGrainIntensity"
	UniformDarkNavy       = "uDarkNavy"
	UniformGradientSize   = "uGradientSize"
	UniformGradientCount  = "uGradientCount"
	UniformColor1Weight   = "uColor1Weight"
	UniformColor2Weight   = "uColor2Weight"
	UniformTouchTexture   = "uTouchTexture"
)

// ColorUniforms names the six blob color uniforms in slot order.
var ColorUniforms = [6]string{"uColor1", "uColor2", "uColor3", "uColor4", "uColor5", "uColor6"}

// UniformNames lists every uniform the gradient fragment shader declares.
func UniformNames() []string {
	names := []string{
		UniformTime, UniformResolution, UniformViewport, UniformSpeed, UniformIntensity,
		UniformGrainIntensity, UniformDarkNavy, UniformGradientSize, UniformGradientCount,
		UniformColor1Weight, UniformColor2Weight, UniformTouchTexture,
	}
	return append(names, ColorUniforms[:]...)
}

// Uniforms is the parameter bag the gradient shader reads each frame.
type Uniforms struct {
	Time       float64
	Resolution Vec2
	Colors     [6]Color
	Speed      float64
	Intensity  float64
	// GrainIntensity scales the per-pixel noise.
	GrainIntensity float64
	// DarkNavy is the base color empty regions are pulled toward.
	DarkNavy      Color
	GradientSize  float64
	GradientCount float64
	Color1Weight  float64
	Color2Weight  float64
}

// DefaultUniforms returns the dark-theme parameter set.
func DefaultUniforms(width, height int) Uniforms {
	u := Uniforms{
		Resolution:     Vec2{float64(width), float64(height)},
		Speed:          1.2,
		Intensity:      1.8,
		GrainIntensity: 0.08,
		GradientSize:   0.45,
		GradientCount:  12.0,
		Color1Weight:   0.5,
		Color2Weight:   1.8,
	}
	u.apply(DarkPalette())
	return u
}

// Palette is the set of colors a theme switch rewrites.
type Palette struct {
	Accent     Color
	Secondary  Color
	Base       Color
	Background Color
}

var (
	darkPalette = Palette{
		Accent:     Color{0.945, 0.353, 0.133},
		Secondary:  Color{0.039, 0.055, 0.153},
		Base:       Color{0.039, 0.055, 0.153},
		Background: mustParseColor("#0a0e27"),
	}
	lightPalette = Palette{
		Accent:     Color{1.0, 0.5, 0.35},
		Secondary:  Color{0.9, 0.95, 1.0},
		Base:       Color{0.95, 0.97, 1.0},
		Background: mustParseColor("#f5f7ff"),
	}
)

// DarkPalette is warm orange over dark navy.
func DarkPalette() Palette { return darkPalette }

// LightPalette is warm orange over near white.
func LightPalette() Palette { return lightPalette }

// apply writes the accent into the odd color slots and the secondary color
// into the even ones.
func (u *Uniforms) apply(p Palette) {
	for i := range u.Colors {
		if i%2 == 0 {
			u.Colors[i] = p.Accent
		} else {
			u.Colors[i] = p.Secondary
		}
	}
	u.DarkNavy = p.Base
}
