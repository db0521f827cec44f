package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gogradient/gradient"
)

// RenderPass is a linked program and the locations of the uniforms it uses.
// Names missing from the program map to -1 and are skipped when set.
type RenderPass struct {
	ShaderProgram uint32
	locations     map[string]int32
}

// newRenderPass looks up every uniform in names. mapped converts a source
// name to the name the program was compiled with.
func newRenderPass(program uint32, names []string, mapped func(string) string) *RenderPass {
	p := &RenderPass{
		ShaderProgram: program,
		locations:     make(map[string]int32, len(names)),
	}
	for _, name := range names {
		glName := name
		if mapped != nil {
			glName = mapped(name)
		}
		p.locations[name] = gl.GetUniformLocation(program, gl.Str(glName+"\x00"))
	}
	return p
}

func (p *RenderPass) loc(name string) int32 {
	if l, ok := p.locations[name]; ok {
		return l
	}
	return -1
}

func (p *RenderPass) use() { gl.UseProgram(p.ShaderProgram) }

func (p *RenderPass) set1f(name string, v float64) {
	if l := p.loc(name); l != -1 {
		gl.Uniform1f(l, float32(v))
	}
}

func (p *RenderPass) set1i(name string, v int32) {
	if l := p.loc(name); l != -1 {
		gl.Uniform1i(l, v)
	}
}

func (p *RenderPass) set2f(name string, x, y float64) {
	if l := p.loc(name); l != -1 {
		gl.Uniform2f(l, float32(x), float32(y))
	}
}

func (p *RenderPass) setColor(name string, c gradient.Color) {
	if l := p.loc(name); l != -1 {
		gl.Uniform3f(l, float32(c.R), float32(c.G), float32(c.B))
	}
}

func (p *RenderPass) setMat4(name string, m mgl32.Mat4) {
	if l := p.loc(name); l != -1 {
		gl.UniformMatrix4fv(l, 1, false, &m[0])
	}
}

func (p *RenderPass) destroy() {
	gl.DeleteProgram(p.ShaderProgram)
}

// updateGradientUniforms uploads the compositor's uniform bag.
func updateGradientUniforms(p *RenderPass, u gradient.Uniforms, viewportW, viewportH int) {
	p.set1f(gradient.UniformTime, u.Time)
	p.set2f(gradient.UniformResolution, u.Resolution.X, u.Resolution.Y)
	p.set2f(gradient.UniformViewport, float64(viewportW), float64(viewportH))
	p.set1f(gradient.UniformSpeed, u.Speed)
	p.set1f(gradient.UniformIntensity, u.Intensity)
	p.set1f(gradient.UniformGrainIntensity, u.GrainIntensity)
	p.setColor(gradient.UniformDarkNavy, u.DarkNavy)
	p.set1f(gradient.UniformGradientSize, u.GradientSize)
	p.set1f(gradient.UniformGradientCount, u.GradientCount)
	p.set1f(gradient.UniformColor1Weight, u.Color1Weight)
	p.set1f(gradient.UniformColor2Weight, u.Color2Weight)
	for i, name := range gradient.ColorUniforms {
		p.setColor(name, u.Colors[i])
	}
}
