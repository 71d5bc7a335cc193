// Package texture decodes images into float textures and samples them for
// pixel shaders.
//
// Texture coordinates follow the usual convention: (0, 0) is the bottom-left
// corner of the image and (1, 1) the top-right. Sampling is bilinear and
// clamps to the edge texels.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/gogpu/sr"
)

// ErrEmpty is returned when an image has no pixels.
var ErrEmpty = errors.New("texture: empty image")

// Texture is an RGBA image stored as straight-alpha float texels, bottom
// row first.
type Texture struct {
	width, height int
	texels        []mgl64.Vec4
}

// New creates a transparent black texture. Non-positive sizes yield
// ErrEmpty.
func New(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmpty
	}
	return &Texture{
		width:  width,
		height: height,
		texels: make([]mgl64.Vec4, width*height),
	}, nil
}

// Load reads a BMP, PNG or JPEG file.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: load %s: %w", path, err)
	}
	sr.Logger().Debug("texture: loaded", "path", path, "width", t.width, "height", t.height)
	return t, nil
}

// Decode reads an image in any registered format.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// FromImage converts img into a texture. The top row of the image becomes
// v = 1.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	t, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < t.height; y++ {
		row := (t.height - 1 - y) * t.width
		for x := 0; x < t.width; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.texels[row+x] = unpremultiply(r, g, bl, a)
		}
	}
	return t, nil
}

func unpremultiply(r, g, b, a uint32) mgl64.Vec4 {
	if a == 0 {
		return mgl64.Vec4{}
	}
	fa := float64(a)
	return mgl64.Vec4{float64(r) / fa, float64(g) / fa, float64(b) / fa, fa / 0xFFFF}
}

// Checker returns a size x size texture of n x n alternating squares.
func Checker(size, n int, a, b sr.RGBA) *Texture {
	size = max(size, 1)
	n = max(n, 1)
	t, _ := New(size, size)
	ca, cb := a.Vec4(), b.Vec4()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := ca
			if (x*n/size+y*n/size)%2 == 1 {
				c = cb
			}
			t.texels[y*size+x] = c
		}
	}
	return t
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Texel returns the texel at (x, y), with y = 0 the bottom row. Coordinates
// are clamped to the texture.
func (t *Texture) Texel(x, y int) mgl64.Vec4 {
	x = clamp(x, 0, t.width-1)
	y = clamp(y, 0, t.height-1)
	return t.texels[y*t.width+x]
}

// SetTexel sets the texel at (x, y). Out-of-range coordinates are ignored.
func (t *Texture) SetTexel(x, y int, c mgl64.Vec4) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.texels[y*t.width+x] = c
}

// FlipVertical mirrors the texture top to bottom, for images authored with
// v pointing down.
func (t *Texture) FlipVertical() {
	for i, j := 0, t.height-1; i < j; i, j = i+1, j-1 {
		ri := t.texels[i*t.width : (i+1)*t.width]
		rj := t.texels[j*t.width : (j+1)*t.width]
		for x := range ri {
			ri[x], rj[x] = rj[x], ri[x]
		}
	}
}

// Sample returns the bilinearly filtered color at uv. Texel centers sit at
// ((x+0.5)/width, (y+0.5)/height); outside them the edge texels extend.
// NaN coordinates sample texel (0, 0).
func (t *Texture) Sample(uv mgl64.Vec2) mgl64.Vec4 {
	fx := uv[0]*float64(t.width) - 0.5
	fy := uv[1]*float64(t.height) - 0.5
	if math.IsNaN(fx) {
		fx = 0
	}
	if math.IsNaN(fy) {
		fy = 0
	}
	fx = math.Max(0, math.Min(fx, float64(t.width-1)))
	fy = math.Max(0, math.Min(fy, float64(t.height-1)))

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, t.width-1), min(y0+1, t.height-1)
	dx, dy := fx-float64(x0), fy-float64(y0)

	c00 := t.texels[y0*t.width+x0]
	c10 := t.texels[y0*t.width+x1]
	c01 := t.texels[y1*t.width+x0]
	c11 := t.texels[y1*t.width+x1]

	bottom := lerp(c00, c10, dx)
	top := lerp(c01, c11, dx)
	return lerp(bottom, top, dy)
}

// SampleScalar returns the red channel of Sample, for single-channel maps
// such as specular intensity.
func (t *Texture) SampleScalar(uv mgl64.Vec2) float64 {
	return t.Sample(uv)[0]
}

// ToImage converts the texture back into an image, top row first.
func (t *Texture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		row := (t.height - 1 - y) * t.width
		for x := 0; x < t.width; x++ {
			img.Set(x, y, sr.FromVec4(t.texels[row+x]).Color())
		}
	}
	return img
}

func lerp(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
