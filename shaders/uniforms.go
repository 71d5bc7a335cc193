// Package shaders provides ready-made vertex and pixel shaders for the sr
// renderer: flat vertex colors, diffuse textures, a depth visualizer and
// Phong lighting with diffuse, normal and specular maps.
//
// Every shader type implements both sr.VertexShader and sr.PixelShader, and
// reads only the state it was built with, so it is safe to use from several
// rasterization workers at once. Build a new shader value (or update its
// Uniforms between frames) rather than mutating it during a draw.
package shaders

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
)

// Varying slots written by the vertex shaders in this package. Slots are
// typed, so the same index may be reused across types.
const (
	SlotColor   = 0 // Vec4: vertex color
	SlotUV      = 0 // Vec2: texture coordinate
	SlotNormal  = 0 // Vec3: world-space normal
	SlotEye     = 1 // Vec3: world-space direction towards the eye
	SlotTangent = 2 // Vec3: world-space tangent
	SlotDepth   = 0 // float: view-space distance along the view axis
)

// Program is a matched vertex and pixel shader pair.
type Program interface {
	sr.VertexShader
	sr.PixelShader
}

// Bind binds both stages of p to r.
func Bind(r *sr.Renderer, p Program) {
	r.BindVertexShader(p)
	r.BindPixelShader(p)
}

// Uniforms holds the per-frame state shared by every vertex of a draw.
type Uniforms struct {
	Model      mgl64.Mat4
	View       mgl64.Mat4
	Projection mgl64.Mat4

	// Eye is the camera position in world space.
	Eye mgl64.Vec3
	// LightDir points from the surface towards a directional light.
	LightDir   mgl64.Vec3
	LightColor sr.RGBA
	// Ambient is the light intensity added regardless of orientation.
	Ambient float64
}

// Camera describes a look-at camera with a perspective lens.
type Camera struct {
	Eye, Target, Up mgl64.Vec3
	// FovY is the vertical field of view in degrees.
	FovY      float64
	Near, Far float64
}

// DefaultCamera looks at the origin from (0, 0, 3) with a 60 degree lens.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl64.Vec3{0, 0, 3},
		Target: mgl64.Vec3{0, 0, 0},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   60,
		Near:   0.1,
		Far:    100,
	}
}

// NewUniforms builds identity-model uniforms for cam at the given aspect
// ratio, lit by a white light from the upper right front.
func NewUniforms(cam Camera, aspect float64) Uniforms {
	return Uniforms{
		Model:      mgl64.Ident4(),
		View:       mgl64.LookAtV(cam.Eye, cam.Target, cam.Up),
		Projection: Perspective(mgl64.DegToRad(cam.FovY), aspect, cam.Near, cam.Far),
		Eye:        cam.Eye,
		LightDir:   mgl64.Vec3{1, 1, 0.85}.Normalize(),
		LightColor: sr.White,
		Ambient:    0.1,
	}
}

// MVP returns Projection * View * Model.
func (u *Uniforms) MVP() mgl64.Mat4 {
	return u.Projection.Mul4(u.View).Mul4(u.Model)
}

// NormalMatrix returns the inverse transpose of the model matrix's upper
// 3x3, which maps object-space normals to world space.
func (u *Uniforms) NormalMatrix() mgl64.Mat3 {
	return u.Model.Mat3().Inv().Transpose()
}

// depthRemap maps OpenGL clip z in [-w, w] to [0, w].
var depthRemap = mgl64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective returns a right-handed perspective projection whose clip z
// spans [0, w] between the near and far planes, as sr's clip test expects.
// fovy is in radians.
func Perspective(fovy, aspect, near, far float64) mgl64.Mat4 {
	return depthRemap.Mul4(mgl64.Perspective(fovy, aspect, near, far))
}

// Orthographic returns a right-handed orthographic projection with clip z
// in [0, 1].
func Orthographic(left, right, bottom, top, near, far float64) mgl64.Mat4 {
	return depthRemap.Mul4(mgl64.Ortho(left, right, bottom, top, near, far))
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func saturate(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func mulVec4(a, b mgl64.Vec4) mgl64.Vec4 {
	return mgl64.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}
