// Package projection turns per-ray hits into screen columns: how tall each
// wall slat is and how dark it is shaded.
package projection

import (
	"errors"
	"fmt"
	"image"
	"math"

	"chosenoffset.com/slatcaster/internal/core/raycast"
)

// Interp maps x from [x0, x1] onto [y0, y1], clamping outside the range.
// x0 must be less than x1.
func Interp(x, x0, x1, y0, y1 float64) float64 {
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// Column is one rendered slat. Wall is false when the ray hit nothing, in
// which case only Index, X0 and X1 are set.
type Column struct {
	Index      int     `json:"index"`
	X0         int     `json:"x0"`
	X1         int     `json:"x1"`
	Wall       bool    `json:"wall"`
	HalfHeight int     `json:"half_height,omitempty"`
	Top        int     `json:"top,omitempty"`
	Bottom     int     `json:"bottom,omitempty"`
	Color      RGB     `json:"color"`
	Distance   float64 `json:"distance,omitempty"`
}

// Rect returns the filled area of the slat in screen pixels
func (c Column) Rect() image.Rectangle {
	if !c.Wall {
		return image.Rectangle{}
	}
	return image.Rect(c.X0, c.Top, c.X1, c.Bottom)
}

// Projector holds the viewport geometry used to size and shade slats.
type Projector struct {
	ViewportWidth  int
	ViewportHeight int
	// Horizon is the screen row slats are centred on.
	Horizon     int
	WallHalfMax int
	WallHalfMin int
	BaseColor   RGB
}

// Validate checks that the viewport and slat bounds make sense
func (p *Projector) Validate() error {
	if p.ViewportWidth <= 0 || p.ViewportHeight <= 0 {
		return fmt.Errorf("invalid viewport size: %dx%d", p.ViewportWidth, p.ViewportHeight)
	}
	if p.WallHalfMin < 0 {
		return fmt.Errorf("minimum wall half-height must be non-negative, got %d", p.WallHalfMin)
	}
	if p.WallHalfMax < p.WallHalfMin {
		return errors.New("maximum wall half-height is below the minimum")
	}
	return nil
}

// ColumnWidth is the pixel width of one slat, chosen so the whole sweep
// spans the viewport.
func (p *Projector) ColumnWidth(s raycast.Sweep) float64 {
	return float64(p.ViewportWidth) * s.Step / s.FOV
}

// HalfHeight maps a corrected distance to a slat half-height. Nearer walls
// are taller; nothing drops below WallHalfMin.
func (p *Projector) HalfHeight(distance float64) int {
	return int(Interp(distance, 0, float64(p.ViewportHeight), float64(p.WallHalfMax), float64(p.WallHalfMin)))
}

// Shade darkens BaseColor with distance. The falloff runs on squared
// distance, so it is quick close up and gentle far away, reaching black at
// the viewport height.
func (p *Projector) Shade(distance float64) RGB {
	d2 := distance * distance
	far := float64(p.ViewportHeight) * float64(p.ViewportHeight)
	channel := func(c uint8) uint8 {
		return uint8(Interp(d2, 0, far, float64(c), 0))
	}
	return RGB{channel(p.BaseColor.R), channel(p.BaseColor.G), channel(p.BaseColor.B)}
}

// Project converts the hit for column i of sweep s into a Column
func (p *Projector) Project(i int, hit raycast.HitRecord, s raycast.Sweep) Column {
	width := p.ColumnWidth(s)
	col := Column{
		Index: i,
		X0:    int(math.Round(float64(i) * width)),
		X1:    int(math.Round(float64(i+1) * width)),
	}
	if !hit.Hit {
		return col
	}

	h := p.HalfHeight(hit.Distance)
	col.Wall = true
	col.HalfHeight = h
	col.Top = p.Horizon - h
	col.Bottom = p.Horizon + h
	col.Color = p.Shade(hit.Distance)
	col.Distance = hit.Distance
	return col
}

// ProjectAll projects a full sweep's hits in column order
func (p *Projector) ProjectAll(hits []raycast.HitRecord, s raycast.Sweep) []Column {
	cols := make([]Column, len(hits))
	for i, hit := range hits {
		cols[i] = p.Project(i, hit, s)
	}
	return cols
}
