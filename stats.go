package sr

import "sync/atomic"

// Stats counts what the pipeline did with submitted geometry. Rejections
// are silent in the drawing API; Stats is where they become visible.
type Stats struct {
	// Primitives is the number of DrawPrimitive calls that reached the
	// vertex stage.
	Primitives uint64
	// Clipped counts primitives discarded because a vertex had w == 0 or
	// fell outside the canonical view volume.
	Clipped uint64
	// Degenerate counts primitives discarded for zero area, either in NDC
	// or once the vertices are snapped to pixels.
	Degenerate uint64
	// PixelsTested counts pixels that passed the coverage test.
	PixelsTested uint64
	// DepthRejected counts covered pixels that failed the depth test.
	DepthRejected uint64
	// PixelsShaded counts pixels written to the color buffer.
	PixelsShaded uint64
}

// counters is the live, concurrently updated form of Stats.
type counters struct {
	primitives    atomic.Uint64
	clipped       atomic.Uint64
	degenerate    atomic.Uint64
	pixelsTested  atomic.Uint64
	depthRejected atomic.Uint64
	pixelsShaded  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Primitives:    c.primitives.Load(),
		Clipped:       c.clipped.Load(),
		Degenerate:    c.degenerate.Load(),
		PixelsTested:  c.pixelsTested.Load(),
		DepthRejected: c.depthRejected.Load(),
		PixelsShaded:  c.pixelsShaded.Load(),
	}
}

func (c *counters) reset() {
	c.primitives.Store(0)
	c.clipped.Store(0)
	c.degenerate.Store(0)
	c.pixelsTested.Store(0)
	c.depthRejected.Store(0)
	c.pixelsShaded.Store(0)
}

// bandCounts accumulates per-band pixel counters without contention; they
// are added to the shared counters once the band finishes.
type bandCounts struct {
	tested, rejected, shaded uint64
}

func (c *counters) add(b bandCounts) {
	c.pixelsTested.Add(b.tested)
	c.depthRejected.Add(b.rejected)
	c.pixelsShaded.Add(b.shaded)
}
