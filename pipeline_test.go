package sr

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr/internal/raster"
)

func TestInViewVolume(t *testing.T) {
	tests := []struct {
		name string
		clip mgl64.Vec4
		want bool
	}{
		{"origin", mgl64.Vec4{0, 0, 0.5, 1}, true},
		{"near plane", mgl64.Vec4{0, 0, 0, 1}, true},
		{"far plane", mgl64.Vec4{0, 0, 2, 2}, true},
		{"corner", mgl64.Vec4{-3, 3, 1, 3}, true},
		{"w zero", mgl64.Vec4{0, 0, 0, 0}, false},
		{"w negative", mgl64.Vec4{0, 0, -1, -2}, false},
		{"z negative", mgl64.Vec4{0, 0, -0.001, 1}, false},
		{"z beyond w", mgl64.Vec4{0, 0, 1.001, 1}, false},
		{"x outside", mgl64.Vec4{1.001, 0, 0.5, 1}, false},
		{"y outside", mgl64.Vec4{0, -1.001, 0.5, 1}, false},
		{"NaN x", mgl64.Vec4{math.NaN(), 0, 0.5, 1}, false},
		{"NaN w", mgl64.Vec4{0, 0, 0.5, math.NaN()}, false},
		{"infinite w", mgl64.Vec4{0, 0, 0.5, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inViewVolume(tt.clip); got != tt.want {
				t.Errorf("inViewVolume(%v) = %v, want %v", tt.clip, got, tt.want)
			}
		})
	}
}

func TestBarycentric_PartitionOfUnity(t *testing.T) {
	// Integer vertices so the coverage test and the float weights agree
	// exactly on which centers are inside.
	p0 := mgl64.Vec2{3, 60}
	p1 := mgl64.Vec2{50, 41}
	p2 := mgl64.Vec2{7, 2}

	pts := [3]raster.Point{{X: 3, Y: 60}, {X: 50, Y: 41}, {X: 7, Y: 2}}
	if raster.Orientation(pts[0], pts[1], pts[2]) < 0 {
		p1, p2 = p2, p1
		pts[1], pts[2] = pts[2], pts[1]
	}
	tri := raster.NewTriangle(pts[0], pts[1], pts[2])
	total := math.Abs(cross2(p1.Sub(p0), p2.Sub(p0)))

	covered := 0
	for cy := 0; cy < 64; cy++ {
		for cx := 0; cx < 64; cx++ {
			if !tri.Covers(cx, cy) {
				continue
			}
			covered++

			a, b, c := subAreas(p0, p1, p2, cx, cy)
			if math.Abs(a+b+c-total) > 1e-9 {
				t.Fatalf("(%d, %d): sub-areas sum to %v, want %v", cx, cy, a+b+c, total)
			}

			wa, wb, wc, ok := barycentric(p0, p1, p2, cx, cy)
			if !ok {
				t.Fatalf("(%d, %d): barycentric not ok", cx, cy)
			}
			if math.Abs(wa+wb+wc-1) > 1e-12 {
				t.Fatalf("(%d, %d): weights sum to %v, want 1", cx, cy, wa+wb+wc)
			}
			if wa < 0 || wb < 0 || wc < 0 {
				t.Fatalf("(%d, %d): negative weight %v %v %v", cx, cy, wa, wb, wc)
			}
		}
	}
	if covered == 0 {
		t.Fatal("triangle covered no pixels")
	}
}

func TestBarycentric_Vertex(t *testing.T) {
	// A pixel center that coincides with a vertex gets all the weight.
	p0 := mgl64.Vec2{0.5, 0.5}
	p1 := mgl64.Vec2{10.5, 0.5}
	p2 := mgl64.Vec2{0.5, 10.5}

	a, b, c, ok := barycentric(p0, p1, p2, 0, 0)
	if !ok || math.Abs(a-1) > 1e-12 || b != 0 || c != 0 {
		t.Errorf("barycentric at p0 = %v %v %v %v, want 1 0 0 true", a, b, c, ok)
	}
}

func TestBarycentric_ZeroArea(t *testing.T) {
	p := mgl64.Vec2{2.5, 2.5}
	if _, _, _, ok := barycentric(p, p, p, 2, 2); ok {
		t.Error("barycentric of a point triangle at the center should not be ok")
	}
}

func TestPerspectiveWeights(t *testing.T) {
	t.Run("sum to one", func(t *testing.T) {
		rhw0, rhw1, rhw2 := 1.0, 0.25, 0.5
		a, b, c := 0.2, 0.3, 0.5
		rhw := rhw0*a + rhw1*b + rhw2*c

		c0, c1, c2 := perspectiveWeights(rhw0, rhw1, rhw2, rhw, a, b, c)
		if math.Abs(c0+c1+c2-1) > 1e-12 {
			t.Errorf("coefficients sum to %v, want 1", c0+c1+c2)
		}
	})

	t.Run("equal depth is affine", func(t *testing.T) {
		c0, c1, c2 := perspectiveWeights(0.5, 0.5, 0.5, 0.5, 0.2, 0.3, 0.5)
		if math.Abs(c0-0.2) > 1e-12 || math.Abs(c1-0.3) > 1e-12 || math.Abs(c2-0.5) > 1e-12 {
			t.Errorf("got %v %v %v, want 0.2 0.3 0.5", c0, c1, c2)
		}
	})

	t.Run("zero rhw", func(t *testing.T) {
		c0, c1, c2 := perspectiveWeights(2, 4, 8, 0, 0.5, 0.25, 0.25)
		if c0 != 1 || c1 != 1 || c2 != 2 {
			t.Errorf("got %v %v %v, want 1 1 2 (w treated as 1)", c0, c1, c2)
		}
	})
}

func TestPerspectiveCorrectInterpolation(t *testing.T) {
	const size = 64
	r := newTestRenderer(t, size, size, WithWorkers(1))
	r.BindVertexShader(perspectiveVS)
	r.BindPixelShader(uvPS)

	// One near vertex (w = 1) and two far ones (w = 4). NDC positions are
	// (-1,-1), (1,-1) and (-1,1).
	v0 := VertexAttrib{Position: mgl64.Vec3{-1, -1, 1}, Texcoord: mgl64.Vec2{0, 0}}
	v1 := VertexAttrib{Position: mgl64.Vec3{4, -4, 4}, Texcoord: mgl64.Vec2{1, 0}}
	v2 := VertexAttrib{Position: mgl64.Vec3{-4, 4, 4}, Texcoord: mgl64.Vec2{0, 1}}
	r.DrawPrimitive(&v0, &v1, &v2)

	// Screen positions are (0,64), (64,64) and (0,0).
	ws := [3]float64{1, 4, 4}
	us := [3]float64{0, 1, 0}
	vs := [3]float64{0, 0, 1}

	for _, px := range []struct{ x, y int }{{32, 40}, {8, 60}, {20, 50}, {3, 10}} {
		cx, cy := float64(px.x)+0.5, float64(px.y)+0.5
		// Solve center = s0 + beta*(s1-s0) + gamma*(s2-s0).
		beta := cx / size
		gamma := (size - cy) / size
		bary := [3]float64{1 - beta - gamma, beta, gamma}

		var num, numV, den, naive float64
		for i := range 3 {
			num += bary[i] * us[i] / ws[i]
			numV += bary[i] * vs[i] / ws[i]
			den += bary[i] / ws[i]
			naive += bary[i] * us[i]
		}
		wantU, wantV := num/den, numV/den

		got := r.Framebuffer().Pixel(px.x, px.y)
		gotR := float64((got >> 16) & 0xFF)
		gotG := float64((got >> 8) & 0xFF)

		if math.Abs(gotR-wantU*255) > 1 {
			t.Errorf("(%d, %d): u = %v/255, want %v/255", px.x, px.y, gotR, wantU*255)
		}
		if math.Abs(gotG-wantV*255) > 1 {
			t.Errorf("(%d, %d): v = %v/255, want %v/255", px.x, px.y, gotG, wantV*255)
		}
		if math.Abs(wantU-naive)*255 > 2 && math.Abs(gotR-naive*255) <= 1 {
			t.Errorf("(%d, %d): u matches affine interpolation %v", px.x, px.y, naive*255)
		}
	}
}
