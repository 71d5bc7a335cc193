package sr

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// approxEqual compares vectors component-wise with an absolute tolerance.
func approxEqual[V ~[2]float64 | ~[3]float64 | ~[4]float64](got, want V, tol float64) bool {
	for i := 0; i < len(got); i++ {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

func TestVaryings_SetGet(t *testing.T) {
	var v Varyings
	v.SetFloat(2, 1.5)
	v.SetVec2(0, mgl64.Vec2{1, 2})
	v.SetVec3(7, mgl64.Vec3{3, 4, 5})
	v.SetVec4(1, mgl64.Vec4{6, 7, 8, 9})

	if v.Float(2) != 1.5 || !v.HasFloat(2) || v.HasFloat(0) {
		t.Errorf("float slot 2 = %v present=%v", v.Float(2), v.HasFloat(2))
	}
	if v.Vec2(0) != (mgl64.Vec2{1, 2}) || !v.HasVec2(0) {
		t.Errorf("vec2 slot 0 = %v", v.Vec2(0))
	}
	if v.Vec3(7) != (mgl64.Vec3{3, 4, 5}) || !v.HasVec3(7) {
		t.Errorf("vec3 slot 7 = %v", v.Vec3(7))
	}
	if v.Vec4(1) != (mgl64.Vec4{6, 7, 8, 9}) || !v.HasVec4(1) {
		t.Errorf("vec4 slot 1 = %v", v.Vec4(1))
	}
	// Slots of different types are independent.
	if v.HasVec2(2) || v.HasVec4(2) {
		t.Error("setting float slot 2 leaked into other types")
	}

	v.Reset()
	if v.HasFloat(2) || v.HasVec3(7) || v.Vec4(1) != (mgl64.Vec4{}) {
		t.Error("Reset() left data behind")
	}
}

func TestVaryings_SlotOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetFloat(MaxVaryings) did not panic")
		}
	}()
	var v Varyings
	v.SetFloat(MaxVaryings, 1)
}

func TestInterpolate_WeightedSum(t *testing.T) {
	var v0, v1, v2, dst Varyings
	v0.SetFloat(0, 1)
	v1.SetFloat(0, 2)
	v2.SetFloat(0, 4)
	v0.SetVec2(1, mgl64.Vec2{0, 0})
	v1.SetVec2(1, mgl64.Vec2{1, 0})
	v2.SetVec2(1, mgl64.Vec2{0, 1})
	v0.SetVec3(3, mgl64.Vec3{1, 1, 1})
	v1.SetVec3(3, mgl64.Vec3{2, 2, 2})
	v2.SetVec3(3, mgl64.Vec3{3, 3, 3})
	v0.SetVec4(0, mgl64.Vec4{1, 0, 0, 1})
	v1.SetVec4(0, mgl64.Vec4{0, 1, 0, 1})
	v2.SetVec4(0, mgl64.Vec4{0, 0, 1, 1})

	Interpolate(&dst, &v0, &v1, &v2, 0.5, 0.25, 0.25)

	if got := dst.Float(0); math.Abs(got-2) > eps {
		t.Errorf("float = %v, want 2", got)
	}
	if got := dst.Vec2(1); !approxEqual(got, mgl64.Vec2{0.25, 0.25}, eps) {
		t.Errorf("vec2 = %v, want [0.25 0.25]", got)
	}
	if got := dst.Vec3(3); !approxEqual(got, mgl64.Vec3{1.75, 1.75, 1.75}, eps) {
		t.Errorf("vec3 = %v, want 1.75s", got)
	}
	if got := dst.Vec4(0); !approxEqual(got, mgl64.Vec4{0.5, 0.25, 0.25, 1}, eps) {
		t.Errorf("vec4 = %v, want [0.5 0.25 0.25 1]", got)
	}
	if !dst.HasFloat(0) || !dst.HasVec2(1) || !dst.HasVec3(3) || !dst.HasVec4(0) {
		t.Error("interpolated slots not marked present")
	}
}

func TestInterpolate_OnlySlotsOfFirstVertex(t *testing.T) {
	var v0, v1, v2, dst Varyings
	v0.SetFloat(0, 1)
	v1.SetFloat(0, 1)
	v2.SetFloat(0, 1)
	// Present on vertices 1 and 2 only.
	v1.SetFloat(5, 9)
	v2.SetFloat(5, 9)

	Interpolate(&dst, &v0, &v1, &v2, 1.0/3, 1.0/3, 1.0/3)

	if dst.HasFloat(5) || dst.Float(5) != 0 {
		t.Errorf("slot 5 = %v present=%v, want absent", dst.Float(5), dst.HasFloat(5))
	}
}

func TestInterpolate_MissingSlotReadsZero(t *testing.T) {
	var v0, v1, v2, dst Varyings
	v0.SetVec2(0, mgl64.Vec2{2, 2})

	Interpolate(&dst, &v0, &v1, &v2, 0.5, 0.25, 0.25)

	if got := dst.Vec2(0); !approxEqual(got, mgl64.Vec2{1, 1}, eps) {
		t.Errorf("vec2 = %v, want [1 1]", got)
	}
}

func TestInterpolate_ResetsDestination(t *testing.T) {
	var v0, v1, v2, dst Varyings
	dst.SetVec4(3, mgl64.Vec4{1, 1, 1, 1})
	v0.SetFloat(0, 1)

	Interpolate(&dst, &v0, &v1, &v2, 1, 0, 0)

	if dst.HasVec4(3) {
		t.Error("stale destination slot survived Interpolate")
	}
}

func TestInterpolate_PartitionOfUnityPreservesConstants(t *testing.T) {
	var v0, v1, v2, dst Varyings
	c := mgl64.Vec4{0.2, 0.4, 0.6, 0.8}
	v0.SetVec4(2, c)
	v1.SetVec4(2, c)
	v2.SetVec4(2, c)

	for _, w := range [][3]float64{{1, 0, 0}, {0.2, 0.3, 0.5}, {1.0 / 3, 1.0 / 3, 1.0 / 3}} {
		Interpolate(&dst, &v0, &v1, &v2, w[0], w[1], w[2])
		if got := dst.Vec4(2); !approxEqual(got, c, eps) {
			t.Errorf("weights %v: got %v, want %v", w, got, c)
		}
	}
}
