package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
)

// cubeFaces lists, per face of the cube, the outward normal and the two
// in-plane axes u and v, so that u x v = normal.
var cubeFaces = [6][3]mgl64.Vec3{
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// Cube returns a cube spanning [-1, 1] on every axis with 24 vertices, so
// each face has its own normals and a full [0, 1] texture square.
func Cube() *Mesh {
	m := &Mesh{
		Vertices: make([]sr.VertexAttrib, 0, 24),
		Faces:    make([][3]int, 0, 12),
	}
	corners := [4]mgl64.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		base := len(m.Vertices)
		for _, c := range corners {
			m.Vertices = append(m.Vertices, sr.VertexAttrib{
				Position: n.Add(u.Mul(c[0])).Add(v.Mul(c[1])),
				Normal:   n,
				Texcoord: mgl64.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
				Color:    mgl64.Vec4{1, 1, 1, 1},
				Tangent:  u,
			})
		}
		m.Faces = append(m.Faces,
			[3]int{base, base + 1, base + 2},
			[3]int{base, base + 2, base + 3})
	}
	return m
}

// Quad returns a unit square in the XY plane spanning [-1, 1], facing +Z.
func Quad() *Mesh {
	m := &Mesh{
		Vertices: []sr.VertexAttrib{
			{Position: mgl64.Vec3{-1, -1, 0}, Texcoord: mgl64.Vec2{0, 0}},
			{Position: mgl64.Vec3{1, -1, 0}, Texcoord: mgl64.Vec2{1, 0}},
			{Position: mgl64.Vec3{1, 1, 0}, Texcoord: mgl64.Vec2{1, 1}},
			{Position: mgl64.Vec3{-1, 1, 0}, Texcoord: mgl64.Vec2{0, 1}},
		},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl64.Vec3{0, 0, 1}
		m.Vertices[i].Tangent = mgl64.Vec3{1, 0, 0}
		m.Vertices[i].Color = mgl64.Vec4{1, 1, 1, 1}
	}
	return m
}

// Sphere returns a UV sphere of radius 1 with the given number of
// longitude segments and latitude rings. Values below 3 and 2 are raised.
func Sphere(segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := &Mesh{
		Vertices: make([]sr.VertexAttrib, 0, (segments+1)*(rings+1)),
		Faces:    make([][3]int, 0, 2*segments*rings),
	}
	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		theta := v * math.Pi
		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			phi := u * 2 * math.Pi
			p := mgl64.Vec3{
				math.Sin(theta) * math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta) * math.Sin(phi),
			}
			m.Vertices = append(m.Vertices, sr.VertexAttrib{
				Position: p,
				Normal:   p,
				Texcoord: mgl64.Vec2{u, 1 - v},
				Color:    mgl64.Vec4{1, 1, 1, 1},
				Tangent:  mgl64.Vec3{-math.Sin(phi), 0, math.Cos(phi)},
			})
		}
	}

	stride := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i0 := r*stride + s
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			if r > 0 {
				m.Faces = append(m.Faces, [3]int{i0, i2, i1})
			}
			if r < rings-1 {
				m.Faces = append(m.Faces, [3]int{i1, i2, i3})
			}
		}
	}
	return m
}
