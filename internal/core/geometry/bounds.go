package geometry

import "math"

// Bounds is an axis-aligned box in world units
type Bounds struct {
	Min, Max Point
}

// BoundsOf returns the smallest box containing every segment endpoint and
// the extra points.
func BoundsOf(segments []Segment, extra ...Point) Bounds {
	b := Bounds{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	grow := func(p Point) {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	for _, s := range segments {
		grow(s.A)
		grow(s.B)
	}
	for _, p := range extra {
		grow(p)
	}
	return b
}

// Diagonal returns the length of the box's diagonal
func (b Bounds) Diagonal() float64 {
	return Distance(b.Min, b.Max)
}

// Contains reports whether p lies inside the box, edges included
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
