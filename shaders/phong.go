package shaders

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/texture"
)

// NormalSpace selects how a normal map is interpreted.
type NormalSpace int

const (
	// ObjectSpace normal maps store object-space normals; they are
	// transformed by the normal matrix.
	ObjectSpace NormalSpace = iota
	// TangentSpace normal maps are relative to the interpolated
	// normal/tangent frame.
	TangentSpace
)

// Material describes the surface a Phong shader lights.
type Material struct {
	// Color multiplies the diffuse map (or stands in for it).
	Color sr.RGBA

	// Diffuse, Normal and Specular are optional maps sampled by the vertex
	// texture coordinates.
	Diffuse  *texture.Texture
	Normal   *texture.Texture
	Specular *texture.Texture

	NormalSpace NormalSpace

	// Shininess is the specular exponent. With a specular map the exponent
	// is the map value times Shininess instead.
	Shininess float64
	// SpecularStrength scales the highlight. Zero disables it.
	SpecularStrength float64
}

// DefaultMaterial is a white, moderately glossy surface without maps.
func DefaultMaterial() Material {
	return Material{
		Color:            sr.White,
		Shininess:        32,
		SpecularStrength: 0.25,
	}
}

// Phong lights a surface with one directional light, an ambient term and a
// reflected-ray specular highlight.
type Phong struct {
	mvp      mgl64.Mat4
	model    mgl64.Mat4
	normal   mgl64.Mat3
	eye      mgl64.Vec3
	lightDir mgl64.Vec3
	light    mgl64.Vec4
	ambient  float64
	mat      Material
}

// NewPhong creates a Phong shader for u and m.
func NewPhong(u Uniforms, m Material) *Phong {
	return &Phong{
		mvp:      u.MVP(),
		model:    u.Model,
		normal:   u.NormalMatrix(),
		eye:      u.Eye,
		lightDir: normalize(u.LightDir),
		light:    u.LightColor.Vec4(),
		ambient:  u.Ambient,
		mat:      m,
	}
}

// Transform implements sr.VertexShader.
func (s *Phong) Transform(attr *sr.VertexAttrib, out *sr.Varyings) mgl64.Vec4 {
	p := attr.Position.Vec4(1)
	world := s.model.Mul4x1(p).Vec3()

	out.SetVec4(SlotColor, attr.Color)
	out.SetVec2(SlotUV, attr.Texcoord)
	out.SetVec3(SlotNormal, s.normal.Mul3x1(attr.Normal))
	out.SetVec3(SlotEye, s.eye.Sub(world))
	out.SetVec3(SlotTangent, s.model.Mat3().Mul3x1(attr.Tangent))
	return s.mvp.Mul4x1(p)
}

// Shade implements sr.PixelShader.
func (s *Phong) Shade(in *sr.Varyings) mgl64.Vec4 {
	uv := in.Vec2(SlotUV)

	base := mulVec4(s.mat.Color.Vec4(), in.Vec4(SlotColor))
	if s.mat.Diffuse != nil {
		base = mulVec4(base, s.mat.Diffuse.Sample(uv))
	}

	n := s.surfaceNormal(in, uv)
	l := s.lightDir

	diffuse := math.Max(0, n.Dot(l))

	var specular float64
	if s.mat.SpecularStrength > 0 && diffuse > 0 {
		exp := s.mat.Shininess
		if s.mat.Specular != nil {
			exp *= s.mat.Specular.SampleScalar(uv)
		}
		r := normalize(n.Mul(2 * n.Dot(l)).Sub(l))
		e := normalize(in.Vec3(SlotEye))
		specular = math.Pow(saturate(r.Dot(e)), math.Max(exp, 1)) * s.mat.SpecularStrength
	}

	k := s.ambient + diffuse + specular
	return mgl64.Vec4{
		saturate(base[0] * k * s.light[0]),
		saturate(base[1] * k * s.light[1]),
		saturate(base[2] * k * s.light[2]),
		base[3],
	}
}

// surfaceNormal returns the unit world-space normal at the pixel, from the
// normal map when there is one.
func (s *Phong) surfaceNormal(in *sr.Varyings, uv mgl64.Vec2) mgl64.Vec3 {
	n := normalize(in.Vec3(SlotNormal))
	if s.mat.Normal == nil {
		return n
	}

	m := s.mat.Normal.Sample(uv).Vec3().Mul(2).Sub(mgl64.Vec3{1, 1, 1})
	switch s.mat.NormalSpace {
	case TangentSpace:
		t := in.Vec3(SlotTangent)
		t = normalize(t.Sub(n.Mul(n.Dot(t))))
		b := n.Cross(t)
		return normalize(t.Mul(m[0]).Add(b.Mul(m[1])).Add(n.Mul(m[2])))
	default:
		return normalize(s.normal.Mul3x1(m))
	}
}
