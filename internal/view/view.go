// Package view paints rendered frames: the first-person slat view and the
// top-down debug map.
package view

import (
	"image/color"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/projection"
	"chosenoffset.com/slatcaster/internal/core/raycast"
	"chosenoffset.com/slatcaster/internal/render"
	"chosenoffset.com/slatcaster/internal/scene"
)

// Palette holds the debug map colours
type Palette struct {
	Background color.Color
	Wall       color.Color
	Ray        color.Color
	Observer   color.Color
	Visible    color.Color
	Hint       string
}

// DefaultPalette draws walls in the scene's wall colour and rays in amber
func DefaultPalette(s *scene.Scene) Palette {
	return Palette{
		Background: color.Black,
		Wall:       s.Projector().BaseColor.NRGBA(),
		Ray:        color.NRGBA{255, 200, 0, 255},
		Observer:   color.NRGBA{255, 200, 0, 255},
		Visible:    color.NRGBA{40, 40, 40, 255},
		Hint:       `use "a, s, d, w" to move, "+, -" to change fov`,
	}
}

const (
	wallStroke   = 5
	rayStroke    = 1
	observerSize = 3
	hintX, hintY = 10, 10
)

// View draws frames of one scene
type View struct {
	renderer render.Renderer
	scene    *scene.Scene
	Palette  Palette
	// ShowVisibility fills the floor area visible from the observer on the map.
	ShowVisibility bool

	background render.Image
}

// New creates a view for s
func New(r render.Renderer, s *scene.Scene) *View {
	return &View{
		renderer: r,
		scene:    s,
		Palette:  DefaultPalette(s),
	}
}

// Background returns the floor and ceiling gradient, building it on first
// use. The ceiling fades from blue at the top to black at the horizon and
// the floor from black at the horizon to red at the bottom.
func (v *View) Background() render.Image {
	if v.background != nil {
		return v.background
	}

	size := v.scene.Viewport()
	horizon := v.scene.Projector().Horizon
	bg := v.renderer.NewImage(size.X, size.Y)
	bg.Fill(color.Black)

	w := float32(size.X)
	for row := 0; row < size.Y; row++ {
		var c color.NRGBA
		if row < horizon {
			c = color.NRGBA{0, 0, uint8(projection.Interp(float64(row), 0, float64(horizon), 255, 0)), 255}
		} else {
			depth := float64(size.Y - 1 - row)
			c = color.NRGBA{uint8(projection.Interp(depth, 0, float64(size.Y-horizon), 255, 0)), 0, 0, 255}
		}
		if c.R == 0 && c.B == 0 {
			continue
		}
		v.renderer.FillRect(bg, 0, float32(row), w, 1, c)
	}

	v.background = bg
	return bg
}

// DrawWorld paints the first-person view: background then one slat per
// column that hit a wall.
func (v *View) DrawWorld(dst render.Image, f *scene.Frame) {
	dst.DrawImage(v.Background(), 0, 0)
	for _, col := range f.Columns {
		if !col.Wall {
			continue
		}
		r := col.Rect()
		v.renderer.FillRect(dst,
			float32(r.Min.X), float32(r.Min.Y),
			float32(r.Dx()), float32(r.Dy()),
			col.Color.NRGBA())
	}
}

// DrawMap paints the top-down view of an observer at pose: walls, the ray
// to each traced hit and the observer.
func (v *View) DrawMap(dst render.Image, pose scene.Pose, hits []raycast.HitRecord) {
	dst.Fill(v.Palette.Background)

	if v.ShowVisibility {
		area := v.scene.VisibleArea(pose.Position)
		pts := make([]render.Vec, len(area))
		for i, p := range area {
			pts[i] = v.toScreen(p)
		}
		v.renderer.FillPolygon(dst, pts, v.Palette.Visible)
	}

	for _, w := range v.scene.Walls() {
		a, b := v.toScreen(w.A), v.toScreen(w.B)
		v.renderer.StrokeLine(dst, a.X, a.Y, b.X, b.Y, wallStroke, v.Palette.Wall)
	}

	eye := v.toScreen(pose.Position)
	for _, hit := range hits {
		if !hit.Hit {
			continue
		}
		end := v.toScreen(hit.Point)
		v.renderer.StrokeLine(dst, eye.X, eye.Y, end.X, end.Y, rayStroke, v.Palette.Ray)
	}
	v.renderer.FillCircle(dst, eye.X, eye.Y, observerSize, v.Palette.Observer)

	if v.Palette.Hint != "" {
		v.renderer.DrawText(dst, v.Palette.Hint, hintX, hintY)
	}
}

// Dispose releases the cached background
func (v *View) Dispose() {
	if v.background != nil {
		v.background.Dispose()
		v.background = nil
	}
}

func (v *View) toScreen(p geometry.Point) render.Vec {
	// Hit points are kept at float precision and truncated here.
	x, y := v.scene.Origin().ToScreen(p.Truncate(), v.scene.Viewport().Y)
	return render.Vec{X: float32(x), Y: float32(y)}
}
