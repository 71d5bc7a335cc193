package mesh

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
)

// ErrUnsupportedFormat is returned by Load for file extensions other than
// .obj and .stl.
var ErrUnsupportedFormat = errors.New("mesh: unsupported format")

// Load reads a mesh file, choosing the parser by extension. Missing normals
// are computed from the faces. Vertex colors default to white.
func Load(path string) (*Mesh, error) {
	var (
		fm  *fauxgl.Mesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		fm, err = fauxgl.LoadOBJ(path)
	case ".stl":
		fm, err = fauxgl.LoadSTL(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("mesh: load %s: %w", path, err)
	}

	m := FromFauxGL(fm)
	sr.Logger().Debug("mesh: loaded", "path", path,
		"vertices", len(m.Vertices), "faces", len(m.Faces))
	return m, nil
}

// FromFauxGL converts a fauxgl triangle soup into an indexed Mesh. Each
// fauxgl triangle contributes three vertices; no welding is done.
func FromFauxGL(fm *fauxgl.Mesh) *Mesh {
	m := &Mesh{
		Vertices: make([]sr.VertexAttrib, 0, 3*len(fm.Triangles)),
		Faces:    make([][3]int, 0, len(fm.Triangles)),
	}

	missingNormals := false
	for _, t := range fm.Triangles {
		base := len(m.Vertices)
		for _, v := range [3]fauxgl.Vertex{t.V1, t.V2, t.V3} {
			n := vec3(v.Normal)
			if n.Len() == 0 {
				missingNormals = true
			}
			m.Vertices = append(m.Vertices, sr.VertexAttrib{
				Position: vec3(v.Position),
				Normal:   n,
				Texcoord: mgl64.Vec2{v.Texture.X, v.Texture.Y},
				Color:    mgl64.Vec4{1, 1, 1, 1},
			})
		}
		m.Faces = append(m.Faces, [3]int{base, base + 1, base + 2})
	}

	if missingNormals {
		m.ComputeNormals()
	}
	return m
}

func vec3(v fauxgl.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
