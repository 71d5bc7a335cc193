package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/mesh"
	"github.com/gogpu/sr/shaders"
	"github.com/gogpu/sr/texture"
)

// Scene is a Config with its meshes and textures loaded, ready to draw.
type Scene struct {
	Config *Config

	background sr.RGBA
	camera     shaders.Camera
	light      sr.RGBA
	models     []model
}

type model struct {
	cfg  Model
	mesh *mesh.Mesh
	mat  shaders.Material

	wire  sr.RGBA
	wired bool
}

// Build loads every mesh and texture c refers to. Relative paths are
// resolved against dir.
func Build(c *Config, dir string) (*Scene, error) {
	return BuildWith(c, dir, nil)
}

// BuildWith is Build drawing files from assets. A nil assets decodes every
// file.
func BuildWith(c *Config, dir string, assets *Assets) (*Scene, error) {
	s := &Scene{
		Config:     c,
		background: sr.Hex(c.Background),
		light:      sr.Hex(c.Light.Color),
		camera: shaders.Camera{
			Eye:    mgl64.Vec3(c.Camera.Eye),
			Target: mgl64.Vec3(c.Camera.Target),
			Up:     mgl64.Vec3(c.Camera.Up),
			FovY:   c.Camera.FovY,
			Near:   c.Camera.Near,
			Far:    c.Camera.Far,
		},
	}

	for _, mc := range c.Models {
		m, err := buildModel(mc, dir, assets)
		if err != nil {
			return nil, fmt.Errorf("scene: model %q: %w", mc.Name, err)
		}
		s.models = append(s.models, m)
	}
	return s, nil
}

func buildModel(mc Model, dir string, assets *Assets) (model, error) {
	m := model{cfg: mc}

	switch mc.Mesh {
	case MeshCube:
		m.mesh = mesh.Cube()
	case MeshQuad:
		m.mesh = mesh.Quad()
	case MeshSphere:
		m.mesh = mesh.Sphere(32, 16)
	default:
		var err error
		if m.mesh, err = assets.loadMesh(resolve(dir, mc.Mesh)); err != nil {
			return m, err
		}
	}
	if mc.Normalize {
		m.mesh.Normalize()
	}

	if mc.Wireframe != "" {
		m.wire, m.wired = sr.Hex(mc.Wireframe), true
	}

	m.mat = shaders.DefaultMaterial()
	m.mat.Color = sr.Hex(mc.Color)
	m.mat.Shininess = mc.Shininess
	if mc.SpecularStrength != 0 {
		m.mat.SpecularStrength = mc.SpecularStrength
	}
	if mc.Shader == ShaderColor || mc.Shader == ShaderTextured {
		m.mesh.SetColor(m.mat.Color)
	}
	if mc.NormalSpace == "tangent" {
		m.mat.NormalSpace = shaders.TangentSpace
		m.mesh.ComputeTangents()
	}

	maps := []struct {
		path string
		dst  **texture.Texture
	}{
		{mc.Diffuse, &m.mat.Diffuse},
		{mc.Normal, &m.mat.Normal},
		{mc.Specular, &m.mat.Specular},
	}
	for _, tm := range maps {
		if tm.path == "" {
			continue
		}
		t, err := assets.loadTexture(resolve(dir, tm.path), mc.FlipV)
		if err != nil {
			return m, err
		}
		*tm.dst = t
	}
	return m, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// Background returns the clear color.
func (s *Scene) Background() sr.RGBA {
	return s.background
}

// Render clears r to the scene background and draws every model as it
// appears at the given frame.
func (s *Scene) Render(r *sr.Renderer, frame int) {
	r.SetBackground(s.background)
	r.Clear()

	aspect := 1.0
	if r.Height() > 0 {
		aspect = float64(r.Width()) / float64(r.Height())
	}
	u := shaders.NewUniforms(s.camera, aspect)
	u.LightDir = mgl64.Vec3(s.Config.Light.Direction).Normalize()
	u.LightColor = s.light
	u.Ambient = s.Config.Light.Ambient

	for _, m := range s.models {
		u.Model = m.transform(frame)
		shaders.Bind(r, m.program(u, s.camera))
		r.DrawTriangles(m.mesh.Vertices, m.mesh.Faces)
		if m.wired {
			r.DrawWireframe(m.mesh.Vertices, m.mesh.Faces, m.wire)
		}
	}
}

// transform returns the model matrix: scale, then rotation, then
// translation.
func (m *model) transform(frame int) mgl64.Mat4 {
	c := m.cfg
	rot := mgl64.HomogRotate3DY(mgl64.DegToRad(c.Spin * float64(frame))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(c.Rotation[2]))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(c.Rotation[1]))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(c.Rotation[0])))
	return mgl64.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(rot).
		Mul4(mgl64.Scale3D(c.Scale, c.Scale, c.Scale))
}

func (m *model) program(u shaders.Uniforms, cam shaders.Camera) shaders.Program {
	switch m.cfg.Shader {
	case ShaderColor:
		return shaders.NewVertexColor(u)
	case ShaderTextured:
		return shaders.NewTextured(u, m.mat.Diffuse)
	case ShaderDepth:
		return shaders.NewDepth(u, cam.Near, cam.Far)
	default:
		return shaders.NewPhong(u, m.mat)
	}
}
