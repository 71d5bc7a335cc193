package sr

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/sr/internal/parallel"
)

// ErrNilPresenter is returned by Present when no presenter is given.
var ErrNilPresenter = errors.New("sr: nil presenter")

// Presenter consumes a finished frame, for example by copying it into a
// window texture or encoding it to a file. pixels is the ARGB8888 color
// buffer, row-major, top-to-bottom, and is only valid during the call.
type Presenter interface {
	Present(pixels []uint32, width, height int) error
}

// PresenterFunc adapts an ordinary function to the Presenter interface.
type PresenterFunc func(pixels []uint32, width, height int) error

// Present calls f(pixels, width, height).
func (f PresenterFunc) Present(pixels []uint32, width, height int) error {
	return f(pixels, width, height)
}

// Renderer draws triangles into a Framebuffer through a bound vertex and
// pixel shader.
//
// A Renderer processes one primitive at a time; the pixels of a primitive
// may be shaded on several goroutines (see WithWorkers). Renderer methods
// must not be called concurrently with each other.
type Renderer struct {
	fb   *Framebuffer
	opts options

	vs VertexShader
	ps PixelShader

	// pool is nil when rendering serially.
	pool *parallel.WorkerPool

	// prim is the setup of the primitive being drawn. Draws are serialized,
	// so a single instance is reused.
	prim primitive

	// scratch holds one interpolation target per band.
	scratch []Varyings

	stats counters
}

// NewRenderer creates a renderer with a width x height framebuffer.
// The framebuffer starts zeroed; call Clear before drawing a frame.
func NewRenderer(width, height int, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	r := &Renderer{
		fb:      NewFramebuffer(width, height),
		opts:    o,
		scratch: make([]Varyings, workers),
	}
	if workers > 1 {
		r.pool = parallel.NewWorkerPool(workers)
	}

	Logger().Debug("sr: renderer created",
		"width", r.fb.Width(), "height", r.fb.Height(), "workers", r.Workers())
	return r
}

// BindVertexShader sets the vertex stage. Passing nil unbinds it, which
// turns DrawPrimitive into a no-op.
func (r *Renderer) BindVertexShader(vs VertexShader) {
	r.vs = vs
	Logger().Debug("sr: vertex shader bound", "bound", vs != nil)
}

// BindPixelShader sets the pixel stage. Passing nil unbinds it, which
// turns DrawPrimitive into a no-op.
func (r *Renderer) BindPixelShader(ps PixelShader) {
	r.ps = ps
	Logger().Debug("sr: pixel shader bound", "bound", ps != nil)
}

// Resize reallocates the color and depth buffers together. Previous
// contents are discarded.
func (r *Renderer) Resize(width, height int) {
	r.fb.Resize(width, height)
	Logger().Debug("sr: framebuffer resized", "width", r.fb.Width(), "height", r.fb.Height())
}

// Clear fills the color buffer with the background color and resets the
// depth buffer to FarDepth. Call it once per frame before drawing.
func (r *Renderer) Clear() {
	r.fb.Clear(r.opts.background.ARGB())
}

// SetBackground changes the color Clear fills the color buffer with.
func (r *Renderer) SetBackground(c RGBA) {
	r.opts.background = c
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int { return r.fb.Width() }

// Height returns the framebuffer height.
func (r *Renderer) Height() int { return r.fb.Height() }

// Workers returns the number of goroutines shading pixels, 1 when
// rendering serially.
func (r *Renderer) Workers() int {
	if r.pool == nil {
		return 1
	}
	return r.pool.Workers()
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// ColorBuffer returns the ARGB8888 color buffer, row-major, top-to-bottom.
// The slice aliases the framebuffer and is invalidated by Resize.
func (r *Renderer) ColorBuffer() []uint32 {
	return r.fb.Pixels()
}

// DrawTriangles draws every face of an indexed triangle list. Faces that
// reference a vertex outside vertices are skipped.
func (r *Renderer) DrawTriangles(vertices []VertexAttrib, indices [][3]int) {
	skipped := 0
	for _, face := range indices {
		if !validFace(face, len(vertices)) {
			skipped++
			continue
		}
		r.DrawPrimitive(&vertices[face[0]], &vertices[face[1]], &vertices[face[2]])
	}
	if skipped > 0 {
		Logger().Warn("sr: skipped faces with out-of-range indices",
			"skipped", skipped, "faces", len(indices), "vertices", len(vertices))
	}
}

// DrawWireframe draws the edges of every face of an indexed triangle list
// as one-pixel lines of color c. Only the vertex shader runs and the lines
// are not depth tested, so hidden edges show too. A face with a vertex
// outside the view volume is skipped whole, as DrawPrimitive would.
func (r *Renderer) DrawWireframe(vertices []VertexAttrib, indices [][3]int, c RGBA) {
	if r.vs == nil || r.fb.Width() == 0 || r.fb.Height() == 0 {
		return
	}
	argb := c.ARGB()
	v := &r.prim.v

faces:
	for _, face := range indices {
		if !validFace(face, len(vertices)) {
			continue
		}
		for i, idx := range face {
			if !r.project(&v[i], &vertices[idx]) {
				continue faces
			}
		}
		for i := range 3 {
			a, b := v[i].pixel, v[(i+1)%3].pixel
			r.fb.DrawLine(a.X, a.Y, b.X, b.Y, argb)
		}
	}
}

func validFace(face [3]int, n int) bool {
	for _, i := range face {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

// Present hands the color buffer to p.
func (r *Renderer) Present(p Presenter) error {
	if p == nil {
		return ErrNilPresenter
	}
	if err := p.Present(r.fb.Pixels(), r.fb.Width(), r.fb.Height()); err != nil {
		return fmt.Errorf("sr: present: %w", err)
	}
	return nil
}

// Stats returns a snapshot of the pipeline counters.
func (r *Renderer) Stats() Stats {
	return r.stats.snapshot()
}

// ResetStats zeroes the pipeline counters. Clear does not reset them.
func (r *Renderer) ResetStats() {
	r.stats.reset()
}

// Close stops the worker goroutines. The renderer keeps working serially
// afterwards. Close is safe to call multiple times.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
