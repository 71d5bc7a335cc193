package sr

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxVaryings is the number of slots available for each varying type.
const MaxVaryings = 8

// Varyings carries the values a vertex shader hands to the pixel shader.
//
// Each interpolation-eligible type (scalar, 2-, 3- and 4-vector) has its own
// fixed array of MaxVaryings slots, so float slot 0 and Vec2 slot 0 are
// distinct. Writing a slot marks it present; only slots present on the first
// vertex of a triangle are interpolated. A slot missing on the other two
// vertices reads as the zero value of its type.
//
// Slot ids outside [0, MaxVaryings) panic.
type Varyings struct {
	floats [MaxVaryings]float64
	vec2s  [MaxVaryings]mgl64.Vec2
	vec3s  [MaxVaryings]mgl64.Vec3
	vec4s  [MaxVaryings]mgl64.Vec4

	floatMask uint8
	vec2Mask  uint8
	vec3Mask  uint8
	vec4Mask  uint8
}

// Reset clears every slot.
func (v *Varyings) Reset() {
	*v = Varyings{}
}

// SetFloat stores a scalar varying.
func (v *Varyings) SetFloat(slot int, x float64) {
	v.floats[slot] = x
	v.floatMask |= 1 << slot
}

// SetVec2 stores a 2-vector varying.
func (v *Varyings) SetVec2(slot int, x mgl64.Vec2) {
	v.vec2s[slot] = x
	v.vec2Mask |= 1 << slot
}

// SetVec3 stores a 3-vector varying.
func (v *Varyings) SetVec3(slot int, x mgl64.Vec3) {
	v.vec3s[slot] = x
	v.vec3Mask |= 1 << slot
}

// SetVec4 stores a 4-vector varying.
func (v *Varyings) SetVec4(slot int, x mgl64.Vec4) {
	v.vec4s[slot] = x
	v.vec4Mask |= 1 << slot
}

// Float returns a scalar varying; unset slots are zero.
func (v *Varyings) Float(slot int) float64 { return v.floats[slot] }

// Vec2 returns a 2-vector varying; unset slots are zero.
func (v *Varyings) Vec2(slot int) mgl64.Vec2 { return v.vec2s[slot] }

// Vec3 returns a 3-vector varying; unset slots are zero.
func (v *Varyings) Vec3(slot int) mgl64.Vec3 { return v.vec3s[slot] }

// Vec4 returns a 4-vector varying; unset slots are zero.
func (v *Varyings) Vec4(slot int) mgl64.Vec4 { return v.vec4s[slot] }

// HasFloat reports whether a scalar slot was written.
func (v *Varyings) HasFloat(slot int) bool { return v.floatMask&(1<<slot) != 0 }

// HasVec2 reports whether a 2-vector slot was written.
func (v *Varyings) HasVec2(slot int) bool { return v.vec2Mask&(1<<slot) != 0 }

// HasVec3 reports whether a 3-vector slot was written.
func (v *Varyings) HasVec3(slot int) bool { return v.vec3Mask&(1<<slot) != 0 }

// HasVec4 reports whether a 4-vector slot was written.
func (v *Varyings) HasVec4(slot int) bool { return v.vec4Mask&(1<<slot) != 0 }

// Interpolate writes v0*c0 + v1*c1 + v2*c2 into dst for every slot present
// in v0. dst is reset first and may not alias any input.
//
// The coefficients are expected to be perspective-corrected already; for a
// point inside an opaque triangle they sum to approximately one.
func Interpolate(dst, v0, v1, v2 *Varyings, c0, c1, c2 float64) {
	dst.Reset()

	for m := v0.floatMask; m != 0; m &= m - 1 {
		i := bits.TrailingZeros8(m)
		dst.floats[i] = v0.floats[i]*c0 + v1.floats[i]*c1 + v2.floats[i]*c2
	}
	dst.floatMask = v0.floatMask

	for m := v0.vec2Mask; m != 0; m &= m - 1 {
		i := bits.TrailingZeros8(m)
		a, b, c := v0.vec2s[i], v1.vec2s[i], v2.vec2s[i]
		dst.vec2s[i] = mgl64.Vec2{
			a[0]*c0 + b[0]*c1 + c[0]*c2,
			a[1]*c0 + b[1]*c1 + c[1]*c2,
		}
	}
	dst.vec2Mask = v0.vec2Mask

	for m := v0.vec3Mask; m != 0; m &= m - 1 {
		i := bits.TrailingZeros8(m)
		a, b, c := v0.vec3s[i], v1.vec3s[i], v2.vec3s[i]
		dst.vec3s[i] = mgl64.Vec3{
			a[0]*c0 + b[0]*c1 + c[0]*c2,
			a[1]*c0 + b[1]*c1 + c[1]*c2,
			a[2]*c0 + b[2]*c1 + c[2]*c2,
		}
	}
	dst.vec3Mask = v0.vec3Mask

	for m := v0.vec4Mask; m != 0; m &= m - 1 {
		i := bits.TrailingZeros8(m)
		a, b, c := v0.vec4s[i], v1.vec4s[i], v2.vec4s[i]
		dst.vec4s[i] = mgl64.Vec4{
			a[0]*c0 + b[0]*c1 + c[0]*c2,
			a[1]*c0 + b[1]*c1 + c[1]*c2,
			a[2]*c0 + b[2]*c1 + c[2]*c2,
			a[3]*c0 + b[3]*c1 + c[3]*c2,
		}
	}
	dst.vec4Mask = v0.vec4Mask
}
