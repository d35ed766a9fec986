// Package rendertest provides in-memory render backends that record draw
// calls for tests.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/slatcaster/internal/render"
)

// Call is one recorded draw operation
type Call struct {
	Op     string
	Target *Image
	Rect   image.Rectangle // FillRect bounds, rounded
	Points []render.Vec
	Color  color.Color
	Text   string
}

// Renderer records every draw call made through it.
type Renderer struct {
	Calls []Call
}

// NewRenderer returns an empty recorder
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.record(Call{
		Op:     "rect",
		Target: dst.(*Image),
		Rect:   image.Rect(int(x), int(y), int(x+width), int(y+height)),
		Color:  clr,
	})
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	r.record(Call{Op: "line", Target: dst.(*Image), Points: []render.Vec{{X: x0, Y: y0}, {X: x1, Y: y1}}, Color: clr})
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.record(Call{Op: "circle", Target: dst.(*Image), Points: []render.Vec{{X: x, Y: y}}, Color: clr})
}

func (r *Renderer) FillPolygon(dst render.Image, points []render.Vec, clr color.Color) {
	pts := make([]render.Vec, len(points))
	copy(pts, points)
	r.record(Call{Op: "polygon", Target: dst.(*Image), Points: pts, Color: clr})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int) {
	r.record(Call{Op: "text", Target: dst.(*Image), Points: []render.Vec{{X: float32(x), Y: float32(y)}}, Text: text})
}

func (r *Renderer) record(c Call) {
	r.Calls = append(r.Calls, c)
}

// Count returns how many calls of op were made against target. A nil
// target matches every image.
func (r *Renderer) Count(op string, target *Image) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op && (target == nil || c.Target == target) {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls
func (r *Renderer) Reset() {
	r.Calls = r.Calls[:0]
}

// Image is a sized surface that remembers fills and draws.
type Image struct {
	W, H     int
	Fills    []color.Color
	Drawn    []render.Image
	Disposed bool
}

// NewImage returns a blank image
func NewImage(width, height int) *Image {
	return &Image{W: width, H: height}
}

func (i *Image) Bounds() image.Rectangle                  { return image.Rect(0, 0, i.W, i.H) }
func (i *Image) Size() (width, height int)                { return i.W, i.H }
func (i *Image) Fill(clr color.Color)                     { i.Fills = append(i.Fills, clr) }
func (i *Image) Clear()                                   { i.Fills = append(i.Fills, color.Transparent) }
func (i *Image) DrawImage(src render.Image, x, y float64) { i.Drawn = append(i.Drawn, src) }
func (i *Image) Dispose()                                 { i.Disposed = true }

// Input is a scripted keyboard. Keys in Just count as just pressed until
// Release is called.
type Input struct {
	Just map[render.Key]bool
}

// NewInput returns a keyboard with nothing pressed
func NewInput() *Input {
	return &Input{Just: map[render.Key]bool{}}
}

// Tap marks key as just pressed for the next tick
func (in *Input) Tap(key render.Key) {
	in.Just[key] = true
}

// Release clears every just-pressed key
func (in *Input) Release() {
	clear(in.Just)
}

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Just[key] }
