package shaders

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/texture"
)

// VertexColor shades each triangle with its interpolated vertex colors.
type VertexColor struct {
	mvp mgl64.Mat4
}

// NewVertexColor creates a vertex-color shader for u.
func NewVertexColor(u Uniforms) *VertexColor {
	return &VertexColor{mvp: u.MVP()}
}

// Transform implements sr.VertexShader.
func (s *VertexColor) Transform(attr *sr.VertexAttrib, out *sr.Varyings) mgl64.Vec4 {
	out.SetVec4(SlotColor, attr.Color)
	return s.mvp.Mul4x1(attr.Position.Vec4(1))
}

// Shade implements sr.PixelShader.
func (s *VertexColor) Shade(in *sr.Varyings) mgl64.Vec4 {
	return in.Vec4(SlotColor)
}

// Textured modulates a diffuse texture by the vertex color.
type Textured struct {
	mvp     mgl64.Mat4
	diffuse *texture.Texture
}

// NewTextured creates a textured shader. A nil texture falls back to the
// vertex color alone.
func NewTextured(u Uniforms, diffuse *texture.Texture) *Textured {
	return &Textured{mvp: u.MVP(), diffuse: diffuse}
}

// Transform implements sr.VertexShader.
func (s *Textured) Transform(attr *sr.VertexAttrib, out *sr.Varyings) mgl64.Vec4 {
	out.SetVec4(SlotColor, attr.Color)
	out.SetVec2(SlotUV, attr.Texcoord)
	return s.mvp.Mul4x1(attr.Position.Vec4(1))
}

// Shade implements sr.PixelShader.
func (s *Textured) Shade(in *sr.Varyings) mgl64.Vec4 {
	c := in.Vec4(SlotColor)
	if s.diffuse == nil {
		return c
	}
	return mulVec4(c, s.diffuse.Sample(in.Vec2(SlotUV)))
}

// Depth renders view-space depth as grey levels, white at Near and black at
// Far. It is useful for checking depth ordering.
type Depth struct {
	mvp, modelView mgl64.Mat4
	near, far      float64
}

// NewDepth creates a depth visualizer for u over [near, far].
func NewDepth(u Uniforms, near, far float64) *Depth {
	return &Depth{
		mvp:       u.MVP(),
		modelView: u.View.Mul4(u.Model),
		near:      near,
		far:       far,
	}
}

// Transform implements sr.VertexShader.
func (s *Depth) Transform(attr *sr.VertexAttrib, out *sr.Varyings) mgl64.Vec4 {
	p := attr.Position.Vec4(1)
	// The view looks down -Z.
	out.SetFloat(SlotDepth, -s.modelView.Mul4x1(p)[2])
	return s.mvp.Mul4x1(p)
}

// Shade implements sr.PixelShader.
func (s *Depth) Shade(in *sr.Varyings) mgl64.Vec4 {
	d := 1.0
	if s.far > s.near {
		d = 1 - saturate((in.Float(SlotDepth)-s.near)/(s.far-s.near))
	}
	return mgl64.Vec4{d, d, d, 1}
}
