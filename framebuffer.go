package sr

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// FarDepth is the depth-buffer value of an empty pixel. The depth buffer
// stores 1/w, so 0 stands for a point at infinity and larger values are
// nearer to the camera.
const FarDepth = 0.0

// Framebuffer holds the color and depth targets of a frame.
//
// The color buffer is packed ARGB8888, row-major, top-to-bottom. The depth
// buffer stores the reciprocal homogeneous w of the nearest fragment written
// so far. Both always have width*height elements.
type Framebuffer struct {
	width  int
	height int
	color  []uint32
	depth  []float64
}

// NewFramebuffer creates a framebuffer with the given dimensions.
// Contents are zero: transparent black color and far depth.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers, discarding their contents.
// Negative dimensions are treated as zero.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	fb.width = width
	fb.height = height
	fb.color = make([]uint32, width*height)
	fb.depth = make([]float64, width*height)
}

// Width returns the width of the framebuffer.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height of the framebuffer.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Clear fills the color buffer with background and resets every depth
// value to FarDepth, so the next fragment written to any pixel passes the
// depth test.
func (fb *Framebuffer) Clear(background uint32) {
	for i := range fb.color {
		fb.color[i] = background
	}
	for i := range fb.depth {
		fb.depth[i] = FarDepth
	}
}

// Pixels returns the color buffer. The slice aliases the framebuffer and is
// invalidated by Resize.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.color
}

// DepthBuffer returns the depth buffer. The slice aliases the framebuffer
// and is invalidated by Resize.
func (fb *Framebuffer) DepthBuffer() []float64 {
	return fb.depth
}

// Pixel returns the packed color at (x, y), or 0 outside the bounds.
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0
	}
	return fb.color[y*fb.width+x]
}

// Depth returns the stored 1/w at (x, y), or FarDepth outside the bounds.
func (fb *Framebuffer) Depth(x, y int) float64 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return FarDepth
	}
	return fb.depth[y*fb.width+x]
}

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1), both ends
// included, with Bresenham's algorithm. Pixels outside the framebuffer are
// skipped. The depth buffer is neither tested nor written.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c uint32) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		if x0 >= 0 && x0 < fb.width && y0 >= 0 && y0 < fb.height {
			fb.color[y0*fb.width+x0] = c
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ToImage converts the color buffer to an image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	ARGBToRGBA(img.Pix, fb.color)
	return img
}

// ARGBToRGBA unpacks ARGB8888 pixels into RGBA byte order, four bytes per
// pixel. It converts min(len(src), len(dst)/4) pixels.
func ARGBToRGBA(dst []byte, src []uint32) {
	n := min(len(src), len(dst)/4)
	for i, p := range src[:n] {
		j := i * 4
		dst[j+0] = uint8(p >> 16)
		dst[j+1] = uint8(p >> 8)
		dst[j+2] = uint8(p)
		dst[j+3] = uint8(p >> 24)
	}
}

// SavePNG saves the color buffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, fb.ToImage())
}

// At implements the image.Image interface.
func (fb *Framebuffer) At(x, y int) color.Color {
	p := fb.Pixel(x, y)
	return color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
