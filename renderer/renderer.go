package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gogradient/cursor"
	"github.com/richinsley/gogradient/gradient"
	"github.com/richinsley/gogradient/graphics"
	inputs "github.com/richinsley/gogradient/inputs"
	shader "github.com/richinsley/gogradient/shader"
	xlate "github.com/richinsley/gogradient/translator"
)

var glInitOnce sync.Once

const uniformMVP = "uMVP"

var overlayUniforms = []string{"uViewport", "uRing", "uDot", "uScale", "uColor"}

// cursorOverlay is the ring and dot drawn over the gradient, in window pixels.
type cursorOverlay struct {
	ring, dot cursor.Position
	visible   bool
}

// Renderer draws the gradient plane and the cursor overlay with OpenGL. It is
// the gradient.Scene the compositor allocates its plane from.
type Renderer struct {
	context      graphics.Context
	camera       Camera
	width        int
	height       int
	recordMode   bool
	quadVAO      uint32
	quadVBO      uint32
	gradientPass *RenderPass
	overlayPass  *RenderPass
	trail        inputs.IChannel
	compositor   *gradient.Compositor
	background   gradient.Color
	offscreen    *OffscreenRenderer
	cursor       cursorOverlay
	frame        int32
}

// NewRenderer makes ctx current and loads the GL bindings. In record mode
// frames go to an offscreen framebuffer of the given size instead of the
// window.
func NewRenderer(ctx graphics.Context, width, height int, recordMode bool) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		width:      width,
		height:     height,
		recordMode: recordMode,
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if !recordMode {
		r.width, r.height = ctx.GetFramebufferSize()
	}
	r.camera = NewCamera(r.width, r.height)

	if recordMode {
		var err error
		r.offscreen, err = NewOffscreenRenderer(r.width, r.height)
		if err != nil {
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}
	return r, nil
}

// Size returns the render target size in pixels.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// ViewSize implements gradient.Scene.
func (r *Renderer) ViewSize() gradient.Size { return r.camera.ViewSize() }

// NewPlane implements gradient.Scene.
func (r *Renderer) NewPlane(width, height float64) (gradient.Geometry, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid plane size %vx%v", width, height)
	}
	return newPlane(width, height), nil
}

// SetBackground implements gradient.Scene.
func (r *Renderer) SetBackground(c gradient.Color) { r.background = c }

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// InitScene builds the programs, uploads the trail texture and lets the
// compositor allocate its plane.
func (r *Renderer) InitScene(compositor *gradient.Compositor, trail inputs.PixelSource) error {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	r.gradientPass, err = newGradientPass()
	if err != nil {
		return err
	}

	vs, fs := shader.GetOverlayShaders()
	program, err := newProgram(vs, fs)
	if err != nil {
		return fmt.Errorf("failed to create overlay program: %w", err)
	}
	r.overlayPass = newRenderPass(program, overlayUniforms, nil)

	channel, err := inputs.NewTrailChannel(trail, "clamp", "linear")
	if err != nil {
		return fmt.Errorf("failed to create trail channel: %w", err)
	}
	r.trail = channel
	res := channel.ChannelRes()
	log.Printf("Bound %s channel as %s uTouchTexture (%vx%v)", channel.GetCType(), channel.GetSamplerType(), res[0], res[1])

	r.compositor = compositor
	if err := compositor.Init(); err != nil {
		return err
	}
	return nil
}

func newGradientPass() (*RenderPass, error) {
	source := shader.GetGradientFragmentShader()
	names := gradient.UniformNames()
	if err := shader.CheckUniforms(source, names); err != nil {
		return nil, err
	}
	fragment, err := xlate.TranslateFragment(source)
	if err != nil {
		return nil, err
	}
	program, err := newProgram(shader.GetPlaneVertexShader(), fragment.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create gradient program: %w", err)
	}

	// uMVP lives in the untranslated vertex stage and keeps its name.
	pass := newRenderPass(program, names, fragment.MappedName)
	pass.locations[uniformMVP] = gl.GetUniformLocation(program, gl.Str(uniformMVP+"\x00"))
	return pass, nil
}

// SetCursor places the overlay markers, given in window pixels.
func (r *Renderer) SetCursor(ring, dot cursor.Position, visible bool) {
	r.cursor = cursorOverlay{ring: ring, dot: dot, visible: visible}
}

// Resize follows a framebuffer size change. Offscreen targets keep their
// fixed size.
func (r *Renderer) Resize(width, height int) error {
	if r.recordMode || width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height
	r.camera.SetAspect(width, height)
	if r.compositor == nil {
		return nil
	}
	return r.compositor.OnResize(width, height)
}

// Present draws one frame into the window back buffer, or into the
// offscreen target in record mode.
func (r *Renderer) Present() error {
	if r.compositor == nil {
		return fmt.Errorf("scene not initialized")
	}
	if r.offscreen != nil {
		r.offscreen.Bind()
		defer r.offscreen.Unbind()
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	bg := r.background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	u := r.compositor.Uniforms()
	if plane, ok := r.compositor.Geometry().(*Plane); ok && plane != nil {
		r.trail.Update(&inputs.Uniforms{Time: float32(u.Time), Frame: r.frame})

		r.gradientPass.use()
		updateGradientUniforms(r.gradientPass, u, r.width, r.height)
		r.gradientPass.setMat4(uniformMVP, r.camera.MVP())
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.trail.GetTextureID())
		r.gradientPass.set1i(gradient.UniformTouchTexture, 0)
		plane.draw()
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	if r.cursor.visible {
		r.drawOverlay()
	}

	r.frame++
	return nil
}

func (r *Renderer) drawOverlay() {
	scale := 1.0
	if winW, _ := r.context.GetWindowSize(); winW > 0 && !r.recordMode {
		scale = float64(r.width) / float64(winW)
	}
	ring := cursor.Position{X: r.cursor.ring.X * scale, Y: r.cursor.ring.Y * scale}
	dot := cursor.Position{X: r.cursor.dot.X * scale, Y: r.cursor.dot.Y * scale}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.overlayPass.use()
	r.overlayPass.set2f("uViewport", float64(r.width), float64(r.height))
	r.overlayPass.set2f("uRing", ring.X, ring.Y)
	r.overlayPass.set2f("uDot", dot.X, dot.Y)
	r.overlayPass.set1f("uScale", scale)
	r.overlayPass.setColor("uColor", overlayColor(r.compositor.IsDark()))
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// overlayColor contrasts with the theme background.
func overlayColor(isDark bool) gradient.Color {
	if isDark {
		return gradient.Color{R: 1, G: 1, B: 1}
	}
	return gradient.Color{R: 0.039, G: 0.055, B: 0.153}
}

// Shutdown releases every GL object and the window.
func (r *Renderer) Shutdown() {
	if r.compositor != nil {
		r.compositor.Dispose()
	}
	if r.trail != nil {
		r.trail.Destroy()
	}
	if r.gradientPass != nil {
		r.gradientPass.destroy()
	}
	if r.overlayPass != nil {
		r.overlayPass.destroy()
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	r.context.Shutdown()
	log.Printf("Renderer shut down after %d frames", r.frame)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
