// Package geometry holds the 2D primitives the ray caster is built on:
// world-space points, wall segments and their intersection.
package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point represents a 2D position in world units
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for building a Point from integer world coordinates
func Pt(x, y int) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies p by q element-wise
func (p Point) Mul(q Point) Point {
	return Point{p.X * q.X, p.Y * q.Y}
}

// Scale multiplies both coordinates by s
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Truncate drops the fractional part of both coordinates (toward zero)
func (p Point) Truncate() Point {
	return Point{math.Trunc(p.X), math.Trunc(p.Y)}
}

// Vec2 converts the point to a mathgl vector.
func (p Point) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// FromVec2 converts a mathgl vector back to a Point.
func FromVec2(v mgl64.Vec2) Point {
	return Point{v.X(), v.Y()}
}

// ApproxEqual reports whether p and q are within eps of each other on both axes
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return mgl64.FloatEqualThreshold(p.X, q.X, eps) && mgl64.FloatEqualThreshold(p.Y, q.Y, eps)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction returns the unit vector pointing at angleDeg, measured
// counter-clockwise from the +X axis.
func Direction(angleDeg float64) Point {
	rad := mgl64.DegToRad(angleDeg)
	return Point{math.Cos(rad), math.Sin(rad)}
}

// Origin is the world-to-screen translation. World Y grows upward while
// screen Y grows downward, so ToScreen also flips the vertical axis.
type Origin struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToScreen maps a world point to pixel coordinates on a surface of the
// given height.
func (o Origin) ToScreen(p Point, surfaceHeight int) (x, y float64) {
	return p.X + float64(o.X), float64(surfaceHeight) - (p.Y + float64(o.Y))
}

// Horizon is the screen row the perspective view is centred on.
func (o Origin) Horizon(surfaceHeight int) int {
	return surfaceHeight - o.Y
}
