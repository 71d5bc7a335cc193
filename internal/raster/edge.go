// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements the integer coverage test used by the triangle
// pipeline: edge functions evaluated at pixel centers and the top-left fill
// rule that decides which triangle owns pixels lying exactly on an edge.
//
// All arithmetic is on integers. Pixel centers sit at half-integer
// coordinates, so edge functions are evaluated in doubled coordinates where
// the center of pixel (cx, cy) is (2cx+1, 2cy+1) and vertices are at
// (2x, 2y). Doubling scales every edge value by two and keeps the result
// exact; the sign, and therefore the coverage decision, is unchanged.
package raster

// Point is an integer screen-space position (raster Y grows downward).
type Point struct {
	X, Y int
}

// IsTopLeft reports whether the directed edge a->b is a top or left edge
// under the fill rule: a horizontal edge running toward increasing X, or an
// edge pointing strictly toward decreasing Y.
//
// For two triangles sharing an edge in opposite directions exactly one of
// the two directions is top-left, which is what makes shared edges owned by
// a single triangle.
func IsTopLeft(a, b Point) bool {
	return (a.Y == b.Y && a.X < b.X) || a.Y > b.Y
}

// Edge evaluates the edge function of a->b at the center of pixel (cx, cy),
// in doubled coordinates. It is the 2D cross product (b-a) x (p-a), which is
// the left-handed form -(px-ax)(by-ay) + (py-ay)(bx-ax).
//
// Zero means the pixel center lies on the line through a and b.
func Edge(a, b Point, cx, cy int) int {
	return (2*cy+1-2*a.Y)*(b.X-a.X) - (2*cx+1-2*a.X)*(b.Y-a.Y)
}

// Orientation returns twice the signed raster-space area of p0, p1, p2.
// It is positive when the interior of the triangle lies on the positive side
// of every edge function, which is the winding the coverage test expects.
func Orientation(p0, p1, p2 Point) int {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
}

// bias returns the minimum edge value a covered pixel must reach: top-left
// edges admit pixel centers exactly on the edge, other edges require the
// center to be strictly inside.
func bias(topLeft bool) int {
	if topLeft {
		return 0
	}
	return 1
}
