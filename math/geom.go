// math/geom.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// point 2f

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

// a-b
func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Dot(a, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Length of v
func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Distance between two points
func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	// Degenerate bounds
	return Extent2D{P0: [2]float32{1e30, 1e30}, P1: [2]float32{-1e30, -1e30}}
}

// Extent2DFromCorners returns a well-formed Extent2D spanning the two
// provided corner points, regardless of which corners were given.
func Extent2DFromCorners(a, b [2]float32) Extent2D {
	return Extent2DFromPoints([][2]float32{a, b})
}

// Extent2DFromPoints returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromPoints(pts [][2]float32) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		for d := 0; d < 2; d++ {
			if p[d] < e.P0[d] {
				e.P0[d] = p[d]
			}
			if p[d] > e.P1[d] {
				e.P1[d] = p[d]
			}
		}
	}
	return e
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

///////////////////////////////////////////////////////////////////////////
// segments

// ClosestPointOnSegment returns the point on the line segment (v,w) that
// is closest to p: project p onto the infinite line through v and w and
// clamp the projection parameter to [0,1] so the result never falls
// outside the segment.
// https://stackoverflow.com/a/1501725
func ClosestPointOnSegment(p, v, w [2]float32) [2]float32 {
	l := Sub2f(w, v)
	l2 := Dot(l, l)
	if l2 == 0 {
		return v
	}
	t := Clamp(Dot(Sub2f(p, v), l)/l2, 0, 1)
	return Add2f(v, Scale2f(l, t))
}

// PointSegmentDistance returns the minimum distance between the line
// segment (v,w) and the point p.
func PointSegmentDistance(p, v, w [2]float32) float32 {
	return Distance2f(p, ClosestPointOnSegment(p, v, w))
}
