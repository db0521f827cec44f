package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Plane is a width x height quad centered on the origin in the z = 0 plane.
type Plane struct {
	vao, vbo      uint32
	Width, Height float64
}

// planeVertices returns two triangles covering the plane.
func planeVertices(width, height float64) []float32 {
	w, h := float32(width/2), float32(height/2)
	return []float32{
		-w, h, 0, -w, -h, 0, w, -h, 0,
		-w, h, 0, w, -h, 0, w, h, 0,
	}
}

func newPlane(width, height float64) *Plane {
	p := &Plane{Width: width, Height: height}
	vertices := planeVertices(width, height)

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return p
}

func (p *Plane) draw() {
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Dispose releases the vertex buffers. It is safe to call twice.
func (p *Plane) Dispose() {
	if p.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	p.vao, p.vbo = 0, 0
}
