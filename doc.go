// Package sr is a small software rasterizer for triangle meshes.
//
// # Overview
//
// sr runs the classic programmable pipeline on the CPU: a user vertex shader
// maps each vertex to homogeneous clip space, the primitive is tested against
// the canonical view volume, divided by w, mapped to the viewport and
// rasterized with the top-left fill rule. Every covered pixel is depth tested
// against 1/w, its varyings are interpolated with perspective correction and
// a user pixel shader produces the final color.
//
// # Quick Start
//
//	import "github.com/gogpu/sr"
//
//	r := sr.NewRenderer(640, 480)
//	defer r.Close()
//
//	r.BindVertexShader(vs)
//	r.BindPixelShader(ps)
//
//	r.Clear()
//	r.DrawTriangles(vertices, faces)
//	_ = r.Framebuffer().SavePNG("frame.png")
//
// # Shaders
//
// A VertexShader receives a VertexAttrib and writes varyings into typed
// slots (float, Vec2, Vec3, Vec4; MaxVaryings slots each). A PixelShader
// reads the interpolated varyings and returns an RGBA color in [0, 1].
// Ready-made shaders live in the shaders package.
//
// # Coordinate System
//
//   - Clip space is D3D style: 0 <= z <= w, |x| <= w, |y| <= w
//   - NDC Y points up, raster Y points down
//   - Origin (0,0) is the top-left corner of the framebuffer
//   - Pixel (x, y) is sampled at its center (x+0.5, y+0.5)
//
// # Clipping
//
// There is no geometric clipping. A triangle with any vertex outside the
// view volume, or with w == 0, is dropped entirely. Stats reports how many
// primitives were dropped and why.
//
// # Concurrency
//
// The pixels of one triangle are split into horizontal bands and shaded on
// a worker pool (see WithWorkers). Triangles themselves are processed in
// submission order, so results are identical to single-threaded rendering.
// Shaders must be safe for concurrent use when more than one worker is
// configured.
package sr

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
