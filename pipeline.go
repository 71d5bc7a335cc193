package sr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr/internal/parallel"
	"github.com/gogpu/sr/internal/raster"
)

// shadedVertex is a vertex after the vertex stage plus the values the
// pipeline derives from it. It lives for one DrawPrimitive call.
type shadedVertex struct {
	clip   mgl64.Vec4   // shader output, homogeneous clip space
	ndc    mgl64.Vec4   // clip * rhw
	rhw    float64      // 1 / clip.w
	screen mgl64.Vec2   // viewport position in pixels
	pixel  raster.Point // screen rounded to the nearest integer

	varyings Varyings
}

// primitive is the triangle setup shared by every pixel of a draw.
type primitive struct {
	v      [3]shadedVertex
	tri    raster.Triangle
	bounds raster.Rect
}

// DrawPrimitive runs one triangle through the pipeline: vertex stage,
// clip test, perspective divide, viewport transform, coverage, depth test
// and pixel stage.
//
// Nothing happens when either shader is unbound. A primitive with any vertex
// outside the canonical view volume (0 <= z <= w, |x| <= w, |y| <= w, w != 0)
// is discarded whole, as is one with zero area. Both windings are drawn.
func (r *Renderer) DrawPrimitive(v0, v1, v2 *VertexAttrib) {
	if r.vs == nil || r.ps == nil {
		return
	}
	if r.fb.Width() == 0 || r.fb.Height() == 0 {
		return
	}
	r.stats.primitives.Add(1)

	p := &r.prim
	if !r.setup(p, v0, v1, v2) {
		return
	}
	r.rasterize(p)
}

// project runs the vertex stage for attr and derives the screen position of
// the result. It reports false when the vertex lies outside the view volume.
func (r *Renderer) project(v *shadedVertex, attr *VertexAttrib) bool {
	v.varyings.Reset()
	v.clip = r.vs.Transform(attr, &v.varyings)
	if !inViewVolume(v.clip) {
		return false
	}

	v.rhw = 1 / v.clip[3]
	v.ndc = v.clip.Mul(v.rhw)

	// Device Y points up, raster Y points down.
	width, height := float64(r.fb.Width()), float64(r.fb.Height())
	v.screen = mgl64.Vec2{
		(v.ndc[0] + 1) * width * 0.5,
		(1 - v.ndc[1]) * height * 0.5,
	}
	v.pixel = raster.Point{
		X: int(math.Floor(v.screen[0] + 0.5)),
		Y: int(math.Floor(v.screen[1] + 0.5)),
	}
	return true
}

// setup runs the per-vertex stages and prepares coverage. It reports false
// when the primitive is rejected.
func (r *Renderer) setup(p *primitive, v0, v1, v2 *VertexAttrib) bool {
	for i, attr := range [3]*VertexAttrib{v0, v1, v2} {
		if !r.project(&p.v[i], attr) {
			r.stats.clipped.Add(1)
			return false
		}
	}

	n := p.v[1].ndc.Sub(p.v[0].ndc).Vec3().Cross(p.v[2].ndc.Sub(p.v[0].ndc).Vec3())[2]
	if n == 0 {
		r.stats.degenerate.Add(1)
		return false
	}
	if n > 0 {
		p.v[1], p.v[2] = p.v[2], p.v[1]
	}

	// Vertices that snap onto one line leave no pixel center inside.
	if raster.Orientation(p.v[0].pixel, p.v[1].pixel, p.v[2].pixel) == 0 {
		r.stats.degenerate.Add(1)
		return false
	}

	p.tri = raster.NewTriangle(p.v[0].pixel, p.v[1].pixel, p.v[2].pixel)
	p.bounds = raster.Bounds(p.v[0].pixel, p.v[1].pixel, p.v[2].pixel, r.fb.Width(), r.fb.Height())
	return true
}

// inViewVolume is the all-or-nothing clip test. Comparisons are written so
// that NaN coordinates fail.
func inViewVolume(c mgl64.Vec4) bool {
	x, y, z, w := c[0], c[1], c[2], c[3]
	if w == 0 || math.IsInf(w, 0) {
		return false
	}
	if !(z >= 0 && z <= w) {
		return false
	}
	if !(x >= -w && x <= w) {
		return false
	}
	return y >= -w && y <= w
}

// rasterize shades the covered pixels of p, splitting the bounding box into
// row bands when it is large enough to be worth it.
func (r *Renderer) rasterize(p *primitive) {
	b := p.bounds
	if b.Empty() {
		return
	}

	if r.pool == nil || !r.pool.IsRunning() || b.Area() < r.opts.parallelThreshold || b.Rows() < 2 {
		r.stats.add(r.shadeRows(p, b.MinY, b.MaxY, &r.scratch[0]))
		return
	}

	bands := parallel.SplitRows(b.MinY, b.MaxY, len(r.scratch))
	work := make([]func(), len(bands))
	for i, band := range bands {
		scratch := &r.scratch[i]
		work[i] = func() {
			r.stats.add(r.shadeRows(p, band.MinY, band.MaxY, scratch))
		}
	}
	if !r.pool.ExecuteAll(work) {
		for _, fn := range work {
			fn()
		}
	}
}

// shadeRows runs the per-pixel stages for rows [minY, maxY] of the bounding
// box. Distinct row ranges touch distinct framebuffer cells, so calls with
// non-overlapping ranges may run concurrently.
func (r *Renderer) shadeRows(p *primitive, minY, maxY int, in *Varyings) bandCounts {
	var n bandCounts

	fb := r.fb
	v0, v1, v2 := &p.v[0], &p.v[1], &p.v[2]

	for cy := minY; cy <= maxY; cy++ {
		row := cy * fb.width
		for cx := p.bounds.MinX; cx <= p.bounds.MaxX; cx++ {
			if !p.tri.Covers(cx, cy) {
				continue
			}
			n.tested++

			a, b, c, ok := barycentric(v0.screen, v1.screen, v2.screen, cx, cy)
			if !ok {
				continue
			}

			// 1/w is affine in screen space, so it interpolates directly.
			rhw := v0.rhw*a + v1.rhw*b + v2.rhw*c

			idx := row + cx
			if rhw < fb.depth[idx] {
				n.rejected++
				continue
			}
			fb.depth[idx] = rhw

			c0, c1, c2 := perspectiveWeights(v0.rhw, v1.rhw, v2.rhw, rhw, a, b, c)
			Interpolate(in, &v0.varyings, &v1.varyings, &v2.varyings, c0, c1, c2)

			fb.color[idx] = PackARGB(r.ps.Shade(in))
			n.shaded++
		}
	}
	return n
}

// subAreas returns twice the unsigned areas of the sub-triangles formed by
// the center of pixel (cx, cy) with edges p1-p2, p2-p0 and p0-p1. For a
// center inside the triangle they sum to twice the triangle's area.
func subAreas(p0, p1, p2 mgl64.Vec2, cx, cy int) (a, b, c float64) {
	px := mgl64.Vec2{float64(cx) + 0.5, float64(cy) + 0.5}
	s0 := p0.Sub(px)
	s1 := p1.Sub(px)
	s2 := p2.Sub(px)
	a = math.Abs(cross2(s1, s2))
	b = math.Abs(cross2(s2, s0))
	c = math.Abs(cross2(s0, s1))
	return a, b, c
}

// barycentric returns the screen-space weights of the pixel center with
// respect to p0, p1, p2. ok is false when the sub-areas sum to zero.
func barycentric(p0, p1, p2 mgl64.Vec2, cx, cy int) (a, b, c float64, ok bool) {
	a, b, c = subAreas(p0, p1, p2, cx, cy)
	s := a + b + c
	if s == 0 {
		return 0, 0, 0, false
	}
	inv := 1 / s
	return a * inv, b * inv, c * inv, true
}

// perspectiveWeights turns screen-space weights into the coefficients that
// interpolate varyings correctly under perspective: each vertex value is
// divided by its w, interpolated linearly in screen space and multiplied by
// the pixel's w. rhw is the interpolated 1/w of the pixel; zero is treated
// as w = 1.
func perspectiveWeights(rhw0, rhw1, rhw2, rhw, a, b, c float64) (c0, c1, c2 float64) {
	w := 1.0
	if rhw != 0 {
		w = 1 / rhw
	}
	return rhw0 * a * w, rhw1 * b * w, rhw2 * c * w
}

func cross2(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}
