package inputs

// Uniforms holds the per-frame values a dynamic channel might need.
type Uniforms struct {
	Time  float32
	Frame int32
}

// IChannel is a texture input sampled by a shader pass.
type IChannel interface {
	// GetCType returns the kind of input, e.g. "trail".
	GetCType() string

	// Update is called once per frame before the pass is drawn.
	Update(uniforms *Uniforms)

	// GetTextureID returns the OpenGL texture ID that should be bound.
	GetTextureID() uint32

	// ChannelRes returns the resolution of the input channel as a vec3.
	ChannelRes() [3]float32

	// Destroy releases any resources held by the channel.
	Destroy()

	// GetSamplerType returns the GLSL sampler type (e.g., "sampler2D").
	GetSamplerType() string
}
