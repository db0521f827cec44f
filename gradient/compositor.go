package gradient

import "fmt"

// Geometry is a GPU-side surface owned by the compositor.
type Geometry interface {
	Dispose()
}

// Scene is the host the compositor draws into: it knows the visible extent
// at the plane's depth, allocates plane geometry and owns the clear color.
type Scene interface {
	ViewSize() Size
	NewPlane(width, height float64) (Geometry, error)
	SetBackground(c Color)
}

// Compositor owns the full-view background plane and the uniform bag of the
// gradient shader.
type Compositor struct {
	scene    Scene
	geometry Geometry
	uniforms Uniforms
	dark     Palette
	light    Palette
	isDark   bool
	paused   bool
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithPalettes replaces the dark and light palettes.
func WithPalettes(dark, light Palette) Option {
	return func(c *Compositor) {
		c.dark = dark
		c.light = light
	}
}

// WithResolution sets the initial resolution uniform.
func WithResolution(width, height int) Option {
	return func(c *Compositor) {
		c.uniforms.Resolution = Vec2{float64(width), float64(height)}
	}
}

// NewCompositor creates a compositor in the dark theme. Init must be called
// before the first frame.
func NewCompositor(scene Scene, opts ...Option) *Compositor {
	c := &Compositor{
		scene:    scene,
		uniforms: DefaultUniforms(0, 0),
		dark:     DarkPalette(),
		light:    LightPalette(),
		isDark:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.uniforms.apply(c.dark)
	return c
}

// Init allocates the background plane sized to the scene's view.
func (c *Compositor) Init() error {
	size := c.scene.ViewSize()
	g, err := c.scene.NewPlane(size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("failed to create background plane: %w", err)
	}
	c.geometry = g
	c.scene.SetBackground(c.palette().Background)
	return nil
}

// Update advances the time uniform unless paused.
func (c *Compositor) Update(delta float64) {
	if !c.paused {
		c.uniforms.Time += delta
	}
}

func (c *Compositor) SetPaused(paused bool) { c.paused = paused }
func (c *Compositor) Paused() bool          { return c.paused }

// SetTheme swaps the color uniforms and the clear color. Calling it twice
// with the same value is the same as calling it once.
func (c *Compositor) SetTheme(isDark bool) {
	c.isDark = isDark
	p := c.palette()
	c.uniforms.apply(p)
	c.scene.SetBackground(p.Background)
}

func (c *Compositor) IsDark() bool { return c.isDark }

func (c *Compositor) palette() Palette {
	if c.isDark {
		return c.dark
	}
	return c.light
}

// Background returns the current clear color.
func (c *Compositor) Background() Color { return c.palette().Background }

// OnResize replaces the plane with one matching the new view extent and
// updates the resolution uniform. The old plane is released first.
func (c *Compositor) OnResize(width, height int) error {
	c.uniforms.Resolution = Vec2{float64(width), float64(height)}
	if c.geometry == nil {
		return nil
	}
	c.geometry.Dispose()
	c.geometry = nil

	size := c.scene.ViewSize()
	g, err := c.scene.NewPlane(size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("failed to resize background plane: %w", err)
	}
	c.geometry = g
	return nil
}

// Geometry returns the current plane, nil before Init.
func (c *Compositor) Geometry() Geometry { return c.geometry }

// Uniforms returns a snapshot of the uniform bag.
func (c *Compositor) Uniforms() Uniforms { return c.uniforms }

// Dispose releases the plane.
func (c *Compositor) Dispose() {
	if c.geometry != nil {
		c.geometry.Dispose()
		c.geometry = nil
	}
}
