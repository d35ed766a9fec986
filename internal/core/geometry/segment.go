package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEpsilon is the smallest intersection denominator treated as
// non-parallel.
const DefaultEpsilon = 1e-9

// paramSlack widens the [0,1] parameter range so a ray aimed exactly at a
// shared corner cannot slip between the two walls meeting there.
const paramSlack = 1e-12

// Segment represents a bounded edge from A to B. Walls and ray bodies are
// both segments.
type Segment struct {
	A, B Point
}

// Seg builds a segment from two points
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Length returns the distance between the endpoints
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// IsDegenerate reports whether the segment has zero length
func (s Segment) IsDegenerate() bool {
	return s.A == s.B
}

func (s Segment) String() string {
	return fmt.Sprintf("%v-%v", s.A, s.B)
}

// Intersection is a crossing point between two segments along with the
// parameters locating it on each of them.
type Intersection struct {
	Point Point
	T     float64 // position along the first segment, 0 at A and 1 at B
	U     float64 // position along the second segment
}

// Intersect returns the point where a and b cross, if any.
func Intersect(a, b Segment) (Point, bool) {
	in, ok := IntersectWithin(a, b, DefaultEpsilon)
	return in.Point, ok
}

// IntersectWithin solves the two-segment intersection. Parallel, collinear
// and degenerate pairs (|denominator| <= eps) never intersect. Endpoints
// touching count as a hit.
func IntersectWithin(a, b Segment, eps float64) (Intersection, bool) {
	if a.IsDegenerate() || b.IsDegenerate() {
		return Intersection{}, false
	}

	d1 := a.A.Sub(a.B)
	d2 := b.A.Sub(b.B)
	d3 := a.A.Sub(b.A)

	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) <= eps {
		return Intersection{}, false
	}

	t := (d3.X*d2.Y - d3.Y*d2.X) / denom
	u := -(d1.X*d3.Y - d1.Y*d3.X) / denom
	if t < -paramSlack || t > 1+paramSlack || u < -paramSlack || u > 1+paramSlack {
		return Intersection{}, false
	}
	t = clampUnit(t)
	u = clampUnit(u)

	return Intersection{
		Point: a.A.Sub(d1.Scale(t)),
		T:     t,
		U:     u,
	}, true
}

func clampUnit(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}
