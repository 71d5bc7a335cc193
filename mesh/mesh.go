// Package mesh provides indexed triangle meshes for the sr renderer.
//
// Meshes can be loaded from Wavefront OBJ and STL files or built from the
// procedural shapes in this package. All meshes use the vertex layout of
// sr.VertexAttrib and index faces with [3]int, ready for
// (*sr.Renderer).DrawTriangles.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []sr.VertexAttrib
	Faces    [][3]int
}

// Triangles returns the number of faces.
func (m *Mesh) Triangles() int {
	return len(m.Faces)
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			lo[i] = math.Min(lo[i], v.Position[i])
			hi[i] = math.Max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

// Normalize centers the mesh on the origin and scales it uniformly so that
// its largest extent spans [-1, 1].
func (m *Mesh) Normalize() {
	lo, hi := m.Bounds()
	size := hi.Sub(lo)
	extent := math.Max(size[0], math.Max(size[1], size[2]))
	if extent == 0 {
		return
	}
	center := lo.Add(hi).Mul(0.5)
	s := 2 / extent
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center).Mul(s)
	}
}

// Transform applies matrix to positions and its inverse transpose to normals
// and tangents.
func (m *Mesh) Transform(matrix mgl64.Mat4) {
	nm := matrix.Mat3().Inv().Transpose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mgl64.TransformCoordinate(v.Position, matrix)
		v.Normal = normalize(nm.Mul3x1(v.Normal))
		v.Tangent = normalize(matrix.Mat3().Mul3x1(v.Tangent))
	}
}

// SetColor sets the vertex color of every vertex.
func (m *Mesh) SetColor(c sr.RGBA) {
	v4 := c.Vec4()
	for i := range m.Vertices {
		m.Vertices[i].Color = v4
	}
}

// ComputeNormals replaces vertex normals with the area-weighted average of
// the adjacent face normals.
func (m *Mesh) ComputeNormals() {
	acc := make([]mgl64.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		p0, p1, p2 := m.Vertices[f[0]].Position, m.Vertices[f[1]].Position, m.Vertices[f[2]].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, i := range f {
			acc[i] = acc[i].Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(acc[i])
	}
}

// ComputeTangents derives per-vertex tangents from texture coordinates, for
// tangent-space normal mapping. Faces with degenerate UVs contribute nothing.
func (m *Mesh) ComputeTangents() {
	acc := make([]mgl64.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		v0, v1, v2 := &m.Vertices[f[0]], &m.Vertices[f[1]], &m.Vertices[f[2]]
		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.Texcoord.Sub(v0.Texcoord)
		d2 := v2.Texcoord.Sub(v0.Texcoord)

		det := d1[0]*d2[1] - d2[0]*d1[1]
		if det == 0 {
			continue
		}
		t := e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(1 / det)
		for _, i := range f {
			acc[i] = acc[i].Add(t)
		}
	}
	for i := range m.Vertices {
		v := &m.Vertices[i]
		// Gram-Schmidt against the normal.
		t := acc[i].Sub(v.Normal.Mul(v.Normal.Dot(acc[i])))
		v.Tangent = normalize(t)
	}
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]sr.VertexAttrib(nil), m.Vertices...),
		Faces:    append([][3]int(nil), m.Faces...),
	}
}
