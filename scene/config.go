// Package scene describes what the sr commands render: image size, camera,
// light and a list of models with their shading. Scene files are TOML or
// YAML; Watch reloads them as they change.
package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/sr"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("scene: invalid config")

// Vec3 is an x, y, z triple.
type Vec3 [3]float64

// Config is a complete scene description.
type Config struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"`

	Camera Camera  `toml:"camera" yaml:"camera"`
	Light  Light   `toml:"light" yaml:"light"`
	Models []Model `toml:"models" yaml:"models"`
}

// Camera is a look-at perspective camera.
type Camera struct {
	Eye    Vec3 `toml:"eye" yaml:"eye"`
	Target Vec3 `toml:"target" yaml:"target"`
	Up     Vec3 `toml:"up" yaml:"up"`
	// FovY is the vertical field of view in degrees.
	FovY float64 `toml:"fov" yaml:"fov"`
	Near float64 `toml:"near" yaml:"near"`
	Far  float64 `toml:"far" yaml:"far"`
}

// Light is a single directional light.
type Light struct {
	Direction Vec3    `toml:"direction" yaml:"direction"`
	Color     string  `toml:"color" yaml:"color"`
	Ambient   float64 `toml:"ambient" yaml:"ambient"`
}

// Shader names accepted in Model.Shader.
const (
	ShaderColor    = "color"
	ShaderTextured = "textured"
	ShaderPhong    = "phong"
	ShaderDepth    = "depth"
)

// Model places one mesh in the scene.
type Model struct {
	Name string `toml:"name" yaml:"name"`
	// Mesh is a path to an .obj or .stl file, relative to the scene file,
	// or one of the built-in shapes "cube", "quad" and "sphere".
	Mesh string `toml:"mesh" yaml:"mesh"`
	// Normalize fits the mesh into [-1, 1] before the model transform.
	Normalize bool `toml:"normalize" yaml:"normalize"`

	Shader string `toml:"shader" yaml:"shader"`
	Color  string `toml:"color" yaml:"color"`
	// Wireframe, when set, is the hex color of the face edges drawn over
	// the shaded model.
	Wireframe string `toml:"wireframe,omitempty" yaml:"wireframe,omitempty"`

	Diffuse  string `toml:"diffuse" yaml:"diffuse"`
	Normal   string `toml:"normal" yaml:"normal"`
	Specular string `toml:"specular" yaml:"specular"`
	// NormalSpace is "object" (default) or "tangent".
	NormalSpace string `toml:"normal_space" yaml:"normal_space"`
	// FlipV flips loaded textures vertically, for images stored with the
	// first row at v = 0.
	FlipV bool `toml:"flip_v" yaml:"flip_v"`

	Shininess        float64 `toml:"shininess" yaml:"shininess"`
	SpecularStrength float64 `toml:"specular_strength" yaml:"specular_strength"`

	Position Vec3 `toml:"position" yaml:"position"`
	// Rotation is in degrees, applied X then Y then Z.
	Rotation Vec3    `toml:"rotation" yaml:"rotation"`
	Scale    float64 `toml:"scale" yaml:"scale"`
	// Spin rotates the model around Y by this many degrees per frame.
	Spin float64 `toml:"spin" yaml:"spin"`
}

// Built-in mesh names.
const (
	MeshCube   = "cube"
	MeshQuad   = "quad"
	MeshSphere = "sphere"
)

// Default returns the built-in scene: a spinning Phong-lit cube.
func Default() *Config {
	c := &Config{
		Models: []Model{{
			Name:     "cube",
			Mesh:     MeshCube,
			Shader:   ShaderPhong,
			Color:    "#d9a441",
			Rotation: Vec3{20, 30, 0},
			Spin:     3,
		}},
	}
	c.applyDefaults()
	return c
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Width == 0 {
		c.Width = 640
	}
	if c.Height == 0 {
		c.Height = 480
	}
	if c.Background == "" {
		c.Background = "#1e1e24"
	}

	cam := &c.Camera
	if cam.Eye == (Vec3{}) {
		cam.Eye = Vec3{0, 0, 4}
	}
	if cam.Up == (Vec3{}) {
		cam.Up = Vec3{0, 1, 0}
	}
	if cam.FovY == 0 {
		cam.FovY = 60
	}
	if cam.Near == 0 {
		cam.Near = 0.1
	}
	if cam.Far == 0 {
		cam.Far = 100
	}

	if c.Light.Direction == (Vec3{}) {
		c.Light.Direction = Vec3{1, 1, 0.85}
	}
	if c.Light.Color == "" {
		c.Light.Color = "#ffffff"
	}
	if c.Light.Ambient == 0 {
		c.Light.Ambient = 0.1
	}

	for i := range c.Models {
		m := &c.Models[i]
		if m.Shader == "" {
			m.Shader = ShaderPhong
		}
		if m.Color == "" {
			m.Color = "#ffffff"
		}
		if m.NormalSpace == "" {
			m.NormalSpace = "object"
		}
		if m.Scale == 0 {
			m.Scale = 1
		}
		if m.Shininess == 0 {
			m.Shininess = 32
		}
	}
}

// Validate reports every problem with c, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("size %dx%d must be positive", c.Width, c.Height)
	}
	if !validHex(c.Background) {
		bad("background %q is not a hex color", c.Background)
	}

	cam := c.Camera
	if cam.FovY <= 0 || cam.FovY >= 180 {
		bad("camera fov %v must be in (0, 180)", cam.FovY)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		bad("camera near %v and far %v must satisfy 0 < near < far", cam.Near, cam.Far)
	}
	if cam.Eye == cam.Target {
		bad("camera eye and target coincide")
	}

	if c.Light.Direction == (Vec3{}) {
		bad("light direction is zero")
	}
	if !validHex(c.Light.Color) {
		bad("light color %q is not a hex color", c.Light.Color)
	}

	if len(c.Models) == 0 {
		bad("no models")
	}
	for i, m := range c.Models {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if m.Mesh == "" {
			bad("model %s: no mesh", name)
		}
		switch m.Shader {
		case ShaderColor, ShaderTextured, ShaderPhong, ShaderDepth:
		default:
			bad("model %s: unknown shader %q", name, m.Shader)
		}
		switch m.NormalSpace {
		case "object", "tangent":
		default:
			bad("model %s: unknown normal space %q", name, m.NormalSpace)
		}
		if !validHex(m.Color) {
			bad("model %s: color %q is not a hex color", name, m.Color)
		}
		if m.Wireframe != "" && !validHex(m.Wireframe) {
			bad("model %s: wireframe %q is not a hex color", name, m.Wireframe)
		}
		if m.Scale <= 0 {
			bad("model %s: scale %v must be positive", name, m.Scale)
		}
	}
	return errors.Join(errs...)
}

func validHex(s string) bool {
	_, ok := sr.ParseHex(s)
	return ok
}
