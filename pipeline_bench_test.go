package sr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Pipeline Benchmarks
// =============================================================================

func benchTriangle(b *testing.B, size int, opts ...Option) {
	r := NewRenderer(size, size, opts...)
	defer r.Close()
	r.BindVertexShader(passthroughVS)
	r.BindPixelShader(colorPS)

	v0 := vertex(-1, -1, 0.5, Red)
	v1 := vertex(1, -1, 0.5, Green)
	v2 := vertex(-1, 1, 0.5, Blue)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Clear()
		r.DrawPrimitive(&v0, &v1, &v2)
	}
}

// BenchmarkDrawPrimitive_Small_Serial benchmarks a half-screen triangle at 64x64.
func BenchmarkDrawPrimitive_Small_Serial(b *testing.B) {
	benchTriangle(b, 64, WithWorkers(1))
}

// BenchmarkDrawPrimitive_HD_Serial benchmarks a half-screen triangle at 1024x1024
// on one goroutine.
func BenchmarkDrawPrimitive_HD_Serial(b *testing.B) {
	benchTriangle(b, 1024, WithWorkers(1))
}

// BenchmarkDrawPrimitive_HD_Parallel benchmarks the same triangle split into
// row bands on the worker pool.
func BenchmarkDrawPrimitive_HD_Parallel(b *testing.B) {
	benchTriangle(b, 1024)
}

// BenchmarkFramebuffer_Clear benchmarks clearing a 1024x1024 target.
func BenchmarkFramebuffer_Clear(b *testing.B) {
	fb := NewFramebuffer(1024, 1024)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fb.Clear(Black.ARGB())
	}
}

// BenchmarkInterpolate benchmarks interpolating one slot of every type.
func BenchmarkInterpolate(b *testing.B) {
	var v0, v1, v2, dst Varyings
	for _, v := range []*Varyings{&v0, &v1, &v2} {
		v.SetFloat(0, 1)
		v.SetVec2(0, mgl64.Vec2{1, 2})
		v.SetVec3(0, mgl64.Vec3{1, 2, 3})
		v.SetVec4(0, mgl64.Vec4{1, 2, 3, 4})
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Interpolate(&dst, &v0, &v1, &v2, 0.2, 0.3, 0.5)
	}
}
