// Package raycast finds the nearest wall hit along rays fired from an
// observer and sweeps such rays across a field of view.
package raycast

import (
	"fmt"

	"chosenoffset.com/slatcaster/internal/core/geometry"
)

// Ray represents a ray cast from Origin toward Angle degrees
type Ray struct {
	Origin geometry.Point
	Angle  float64
}

// End returns the far endpoint of the ray at the given reach
func (r Ray) End(reach float64) geometry.Point {
	return r.Origin.Add(geometry.Direction(r.Angle).Scale(reach))
}

// Segment returns the ray body from its origin to the far endpoint
func (r Ray) Segment(reach float64) geometry.Segment {
	return geometry.Seg(r.Origin, r.End(reach))
}

func (r Ray) String() string {
	return fmt.Sprintf("ray at %v toward %g°", r.Origin, r.Angle)
}
