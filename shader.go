package sr

import "github.com/go-gl/mathgl/mgl64"

// VertexAttrib is the caller-supplied input for one vertex. The pipeline
// passes it to the vertex shader by pointer and never modifies it.
type VertexAttrib struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Texcoord mgl64.Vec2
	Color    mgl64.Vec4
	Tangent  mgl64.Vec3
}

// VertexShader transforms one vertex.
//
// Transform returns the homogeneous clip-space position and writes the
// varyings for the pixel stage into out, which is reset before the call.
// A renderer running more than one worker may call a shader from several
// goroutines; shaders should only read the state they captured.
type VertexShader interface {
	Transform(attr *VertexAttrib, out *Varyings) mgl64.Vec4
}

// PixelShader computes the color of one covered pixel from its
// interpolated varyings. The returned channels are clamped to [0, 1]
// when written. in is only valid for the duration of the call.
type PixelShader interface {
	Shade(in *Varyings) mgl64.Vec4
}

// VertexShaderFunc adapts an ordinary function to the VertexShader interface.
type VertexShaderFunc func(attr *VertexAttrib, out *Varyings) mgl64.Vec4

// Transform calls f(attr, out).
func (f VertexShaderFunc) Transform(attr *VertexAttrib, out *Varyings) mgl64.Vec4 {
	return f(attr, out)
}

// PixelShaderFunc adapts an ordinary function to the PixelShader interface.
type PixelShaderFunc func(in *Varyings) mgl64.Vec4

// Shade calls f(in).
func (f PixelShaderFunc) Shade(in *Varyings) mgl64.Vec4 {
	return f(in)
}
