package inputs

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// PixelSource is a CPU-side RGBA image that changes over time. Rows are
// stored top-down.
type PixelSource interface {
	Width() int
	Height() int
	Pixels() []byte
	Dirty() bool
	ClearDirty()
}

// TrailChannel mirrors a PixelSource into a 2D texture. The image is
// re-uploaded only when the source reports new content.
type TrailChannel struct {
	source     PixelSource
	textureID  uint32
	resolution [3]float32
	flipped    []byte
}

// NewTrailChannel allocates the texture and uploads the current content.
func NewTrailChannel(source PixelSource, wrap, filter string) (*TrailChannel, error) {
	width, height := source.Width(), source.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("trail texture has invalid size %dx%d", width, height)
	}

	c := &TrailChannel{
		source:     source,
		resolution: [3]float32{float32(width), float32(height), 1.0},
		flipped:    make([]byte, width*height*4),
	}

	gl.GenTextures(1, &c.textureID)
	gl.BindTexture(gl.TEXTURE_2D, c.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode(wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode(wrap))
	minFilter, magFilter := getFilterMode(filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	VFlip(c.flipped, source.Pixels(), width*4, height)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(c.flipped))
	if filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	source.ClearDirty()

	log.Printf("Trail channel: %dx%d texture, wrap=%s filter=%s", width, height, wrap, filter)
	return c, nil
}

func (c *TrailChannel) GetCType() string { return "trail" }

// Update uploads the source image when it has been redrawn since the last
// upload. GL expects the bottom row first, so the rows are flipped.
func (c *TrailChannel) Update(uniforms *Uniforms) {
	if !c.source.Dirty() {
		return
	}
	width, height := c.source.Width(), c.source.Height()
	VFlip(c.flipped, c.source.Pixels(), width*4, height)

	gl.BindTexture(gl.TEXTURE_2D, c.textureID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(c.flipped))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	c.source.ClearDirty()
}

func (c *TrailChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *TrailChannel) ChannelRes() [3]float32 {
	return c.resolution
}

func (c *TrailChannel) Destroy() {
	gl.DeleteTextures(1, &c.textureID)
	c.textureID = 0
}

func (c *TrailChannel) GetSamplerType() string {
	return "sampler2D"
}
