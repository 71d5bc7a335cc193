// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Rect is an inclusive integer pixel rectangle. An empty rectangle has
// MaxX < MinX or MaxY < MinY.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether the rectangle contains no pixels.
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// Rows returns the number of pixel rows in the rectangle.
func (r Rect) Rows() int {
	if r.Empty() {
		return 0
	}
	return r.MaxY - r.MinY + 1
}

// Area returns the number of pixels in the rectangle.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// Bounds returns the bounding box of the three points clamped to a
// width x height target. The result is empty when the target is.
func Bounds(p0, p1, p2 Point, width, height int) Rect {
	if width <= 0 || height <= 0 {
		return Rect{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	return Rect{
		MinX: clamp(min(p0.X, p1.X, p2.X), 0, width-1),
		MinY: clamp(min(p0.Y, p1.Y, p2.Y), 0, height-1),
		MaxX: clamp(max(p0.X, p1.X, p2.X), 0, width-1),
		MaxY: clamp(max(p0.Y, p1.Y, p2.Y), 0, height-1),
	}
}

// Triangle is the per-primitive coverage setup: three integer vertices and
// the fill-rule flags of their edges, computed once and reused for every
// pixel.
//
// Vertices must be in the winding where Orientation is positive; with the
// opposite winding no pixel is covered.
type Triangle struct {
	P0, P1, P2 Point

	bias01, bias12, bias20 int
}

// NewTriangle prepares the coverage test for p0, p1, p2.
func NewTriangle(p0, p1, p2 Point) Triangle {
	return Triangle{
		P0:     p0,
		P1:     p1,
		P2:     p2,
		bias01: bias(IsTopLeft(p0, p1)),
		bias12: bias(IsTopLeft(p1, p2)),
		bias20: bias(IsTopLeft(p2, p0)),
	}
}

// Edges returns the three edge function values at pixel (cx, cy).
func (t *Triangle) Edges(cx, cy int) (e01, e12, e20 int) {
	return Edge(t.P0, t.P1, cx, cy), Edge(t.P1, t.P2, cx, cy), Edge(t.P2, t.P0, cx, cy)
}

// Covers reports whether the center of pixel (cx, cy) belongs to the
// triangle under the top-left fill rule.
func (t *Triangle) Covers(cx, cy int) bool {
	e01, e12, e20 := t.Edges(cx, cy)
	return e01 >= t.bias01 && e12 >= t.bias12 && e20 >= t.bias20
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
