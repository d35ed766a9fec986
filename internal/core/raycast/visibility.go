package raycast

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/slatcaster/internal/core/geometry"
)

// vertexNudge is the angular offset (radians) cast either side of each
// wall vertex so rays slip past corners.
const vertexNudge = 0.0001

// VisibilityPolygon calculates what the viewer can see from their position.
// Rays are cast only toward wall vertices, so the polygon's edges follow
// the walls. Rays that hit nothing end at maxDistance.
func (c *Caster) VisibilityPolygon(viewer geometry.Point, walls []geometry.Segment, maxDistance float64) []geometry.Point {
	vertices := collectVertices(walls)

	seen := make(map[float64]bool, len(vertices)*3)
	angles := make([]float64, 0, len(vertices)*3)
	for _, v := range vertices {
		base := math.Atan2(v.Y-viewer.Y, v.X-viewer.X)
		for _, a := range [3]float64{base - vertexNudge, base, base + vertexNudge} {
			a = math.Mod(a, 2*math.Pi)
			if a < 0 {
				a += 2 * math.Pi
			}
			if !seen[a] {
				seen[a] = true
				angles = append(angles, a)
			}
		}
	}
	sort.Float64s(angles)

	reach := *c
	reach.Mode = ModePlain
	reach.FarDistance = maxDistance

	polygon := make([]geometry.Point, 0, len(angles))
	for _, a := range angles {
		deg := mgl64.RadToDeg(a)
		hit := reach.Cast(viewer, deg, walls, deg)
		if hit.Hit {
			polygon = append(polygon, hit.Point)
		} else {
			polygon = append(polygon, Ray{Origin: viewer, Angle: deg}.End(maxDistance))
		}
	}
	return polygon
}

// collectVertices extracts the unique endpoints of the walls in first-seen order
func collectVertices(walls []geometry.Segment) []geometry.Point {
	seen := make(map[geometry.Point]bool, len(walls)*2)
	var vertices []geometry.Point
	for _, w := range walls {
		for _, p := range [2]geometry.Point{w.A, w.B} {
			if !seen[p] {
				seen[p] = true
				vertices = append(vertices, p)
			}
		}
	}
	return vertices
}
