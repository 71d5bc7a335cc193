package scene

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/sr"
)

const sceneTOML = `
width = 320
height = 200
background = "#102030"

[camera]
eye = [0.0, 1.0, 5.0]
fov = 45.0

[light]
direction = [0.0, 0.0, 1.0]
ambient = 0.2

[[models]]
name = "left"
mesh = "cube"
shader = "color"
color = "#ff0000"
position = [-1.5, 0.0, 0.0]

[[models]]
name = "right"
mesh = "sphere"
scale = 0.75
spin = 10.0
`

const sceneYAML = `
width: 320
height: 200
background: "#102030"
camera:
  eye: [0, 1, 5]
  fov: 45
light:
  direction: [0, 0, 1]
  ambient: 0.2
models:
  - name: left
    mesh: cube
    shader: color
    color: "#ff0000"
    position: [-1.5, 0, 0]
  - name: right
    mesh: sphere
    scale: 0.75
    spin: 10
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkParsed(t *testing.T, c *Config) {
	t.Helper()
	if c.Width != 320 || c.Height != 200 || c.Background != "#102030" {
		t.Errorf("size/background = %dx%d %s", c.Width, c.Height, c.Background)
	}
	if c.Camera.Eye != (Vec3{0, 1, 5}) || c.Camera.FovY != 45 {
		t.Errorf("camera = %+v", c.Camera)
	}
	// Unset camera fields keep their defaults.
	if c.Camera.Up != (Vec3{0, 1, 0}) || c.Camera.Near != 0.1 || c.Camera.Far != 100 {
		t.Errorf("camera defaults = %+v", c.Camera)
	}
	if c.Light.Ambient != 0.2 || c.Light.Color != "#ffffff" {
		t.Errorf("light = %+v", c.Light)
	}
	if len(c.Models) != 2 {
		t.Fatalf("len(Models) = %d, want 2", len(c.Models))
	}
	left, right := c.Models[0], c.Models[1]
	if left.Shader != ShaderColor || left.Position != (Vec3{-1.5, 0, 0}) || left.Scale != 1 {
		t.Errorf("left = %+v", left)
	}
	if right.Shader != ShaderPhong || right.Scale != 0.75 || right.Spin != 10 || right.Color != "#ffffff" {
		t.Errorf("right = %+v", right)
	}
}

func TestLoad_TOML(t *testing.T) {
	c, err := Load(writeFile(t, t.TempDir(), "scene.toml", sceneTOML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	checkParsed(t, c)
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"scene.yaml", "scene.YML"} {
		t.Run(name, func(t *testing.T) {
			c, err := Load(writeFile(t, t.TempDir(), name, sceneYAML))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			checkParsed(t, c)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(writeFile(t, dir, "scene.json", "{}")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(.json) = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) returned nil error")
	}
	if _, err := Load(writeFile(t, dir, "broken.toml", "width = = 3")); err == nil {
		t.Error("Load(broken) returned nil error")
	}
	if _, err := Load(writeFile(t, dir, "bad.yaml", "width: -4\n")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(negative width) = %v, want ErrInvalid", err)
	}
}

func TestDecode_EmptyUsesDefaults(t *testing.T) {
	c, err := Decode(nil, TOML)
	if err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	d := Default()
	if c.Width != d.Width || c.Height != d.Height || len(c.Models) != 1 || c.Models[0].Mesh != MeshCube {
		t.Errorf("Decode(empty) = %+v, want the default scene", c)
	}
}

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"bad background", func(c *Config) { c.Background = "#12345" }},
		{"non-hex background", func(c *Config) { c.Background = "#zzzzzz" }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"eye at target", func(c *Config) { c.Camera.Eye = c.Camera.Target }},
		{"zero light", func(c *Config) { c.Light.Direction = Vec3{} }},
		{"no models", func(c *Config) { c.Models = nil }},
		{"no mesh", func(c *Config) { c.Models[0].Mesh = "" }},
		{"unknown shader", func(c *Config) { c.Models[0].Shader = "toon" }},
		{"unknown normal space", func(c *Config) { c.Models[0].NormalSpace = "world" }},
		{"negative scale", func(c *Config) { c.Models[0].Scale = -1 }},
		{"bad wireframe color", func(c *Config) { c.Models[0].Wireframe = "red" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{TOML, YAML} {
		data, err := Encode(Default(), f)
		if err != nil {
			t.Fatalf("Encode(%d) error = %v", f, err)
		}
		c, err := Decode(data, f)
		if err != nil {
			t.Fatalf("Decode(%d) error = %v\n%s", f, err, data)
		}
		if c.Models[0] != Default().Models[0] || c.Camera != Default().Camera {
			t.Errorf("format %d: decoded %+v", f, c)
		}
	}
}

func TestBuildAndRender(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", "v -1 -1 0\nv 1 -1 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0.5 1\nf 1/1 2/2 3/3\n")

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{G: 255, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "green.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	c := Default()
	c.Width, c.Height = 64, 64
	c.Models = []Model{{
		Name:    "tri",
		Mesh:    "tri.obj",
		Shader:  ShaderTextured,
		Diffuse: "green.png",
		FlipV:   true,
	}}
	c.applyDefaults()

	s, err := Build(c, dir)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	r := sr.NewRenderer(c.Width, c.Height, sr.WithWorkers(1))
	defer r.Close()
	s.Render(r, 0)

	if got := r.Framebuffer().Pixel(32, 32); got != sr.Green.ARGB() {
		t.Errorf("center = %#08x, want green", got)
	}
	if got := r.Framebuffer().Pixel(0, 0); got != s.Background().ARGB() {
		t.Errorf("corner = %#08x, want background %#08x", got, s.Background().ARGB())
	}
}

func TestBuild_MissingAssets(t *testing.T) {
	c := Default()
	c.Models[0].Mesh = "nope.obj"
	if _, err := Build(c, t.TempDir()); err == nil {
		t.Error("Build(missing mesh) returned nil error")
	}

	c = Default()
	c.Models[0].Diffuse = "nope.png"
	if _, err := Build(c, t.TempDir()); err == nil {
		t.Error("Build(missing texture) returned nil error")
	}
}

func TestRender_Spin(t *testing.T) {
	c := Default()
	c.Width, c.Height = 48, 48
	s, err := Build(c, "")
	if err != nil {
		t.Fatal(err)
	}

	r := sr.NewRenderer(c.Width, c.Height, sr.WithWorkers(1))
	defer r.Close()

	s.Render(r, 0)
	first := append([]uint32(nil), r.ColorBuffer()...)
	s.Render(r, 10)

	same := true
	for i, p := range r.ColorBuffer() {
		if p != first[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("spinning model rendered identically at frames 0 and 10")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.toml", "width = 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config, err error) {
			// A reload can observe the file half written.
			if err != nil || c.Width != 200 {
				return
			}
			select {
			case got <- c:
			default:
			}
		})
	}()

	// The watcher may not be registered yet; keep writing until it reports.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-got:
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() = %v", err)
			}
			return
		case <-tick.C:
			writeFile(t, dir, "scene.toml", "width = 200\n")
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestBuildWith_CachesAssets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", "v 0 0 0\nv 4 0 0\nv 0 4 0\nf 1 2 3\n")

	c := Default()
	c.Models = []Model{{Name: "tri", Mesh: "tri.obj", Normalize: true}}
	c.applyDefaults()

	assets := NewAssets(8)
	for range 2 {
		s, err := BuildWith(c, dir, assets)
		if err != nil {
			t.Fatalf("BuildWith() error = %v", err)
		}
		// Normalize must act on a private copy each time.
		lo, hi := s.models[0].mesh.Bounds()
		if lo[0] != -1 || hi[0] != 1 {
			t.Fatalf("normalized x range = [%v, %v], want [-1, 1]", lo[0], hi[0])
		}
	}

	st := assets.meshes.Stats()
	if st.Misses != 1 || st.Hits != 1 {
		t.Errorf("mesh cache = %+v, want 1 miss and 1 hit", st)
	}
	assets.LogStats()
}

func TestAssets_DropsStaleVersions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "v 0 0 0\nv 4 0 0\nv 0 4 0\nf 1 2 3\n")

	c := Default()
	c.Models = []Model{{Name: "tri", Mesh: "tri.obj"}}
	c.applyDefaults()

	assets := NewAssets(8)
	if _, err := BuildWith(c, dir, assets); err != nil {
		t.Fatalf("BuildWith() error = %v", err)
	}

	// Edit the file and move its mtime forward so the new version gets a
	// new key.
	writeFile(t, dir, "tri.obj", "v 0 0 0\nv 2 0 0\nv 0 2 0\nf 1 2 3\n")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	s, err := BuildWith(c, dir, assets)
	if err != nil {
		t.Fatalf("BuildWith() error = %v", err)
	}
	if _, hi := s.models[0].mesh.Bounds(); hi[0] != 2 {
		t.Errorf("rebuilt mesh max x = %v, want 2", hi[0])
	}

	st := assets.meshes.Stats()
	if st.Len != 1 || st.Misses != 2 {
		t.Errorf("mesh cache = %+v, want one entry after two misses", st)
	}
}

func TestAssets_Purge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", "v 0 0 0\nv 4 0 0\nv 0 4 0\nf 1 2 3\n")

	c := Default()
	c.Models = []Model{{Name: "tri", Mesh: "tri.obj"}}
	c.applyDefaults()

	assets := NewAssets(8)
	for range 2 {
		if _, err := BuildWith(c, dir, assets); err != nil {
			t.Fatalf("BuildWith() error = %v", err)
		}
		assets.Purge()
		if n := assets.meshes.Len(); n != 0 {
			t.Fatalf("meshes.Len() = %d after Purge, want 0", n)
		}
	}

	// Nothing survives a purge, so both builds decoded the file.
	if st := assets.meshes.Stats(); st.Misses != 2 || st.Hits != 0 {
		t.Errorf("mesh cache = %+v, want 2 misses and no hits", st)
	}
}

func TestRender_Wireframe(t *testing.T) {
	c := Default()
	c.Width, c.Height = 64, 64
	c.Models[0].Shader = ShaderColor
	c.Models[0].Color = "#0000ff"
	c.Models[0].Wireframe = "#ff0000"
	c.Models[0].Rotation = Vec3{}
	c.Models[0].Spin = 0
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	s, err := Build(c, "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	r := sr.NewRenderer(c.Width, c.Height, sr.WithWorkers(1))
	defer r.Close()
	s.Render(r, 0)

	var edges, faces int
	for _, p := range r.ColorBuffer() {
		switch p {
		case sr.Red.ARGB():
			edges++
		case sr.Blue.ARGB():
			faces++
		}
	}
	if edges == 0 || faces == 0 {
		t.Errorf("edge pixels = %d, face pixels = %d, want both present", edges, faces)
	}
}
