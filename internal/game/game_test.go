package game

import (
	"errors"
	"testing"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/raycast"
	"chosenoffset.com/slatcaster/internal/render"
	"chosenoffset.com/slatcaster/internal/render/rendertest"
	"chosenoffset.com/slatcaster/internal/scene"
)

func newTestGame(t *testing.T) (*Game, *rendertest.Input) {
	t.Helper()
	s, err := scene.New(scene.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	input := rendertest.NewInput()
	g, err := New(s, rendertest.NewRenderer(), input)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return g, input
}

func TestNewRendersStartFrame(t *testing.T) {
	g, _ := newTestGame(t)
	if g.Frame == nil || len(g.Frame.Columns) != 120 {
		t.Fatal("Expected an initial 120-column frame")
	}
	if g.Pose.Position != geometry.Pt(10, 0) {
		t.Errorf("Expected start at (10, 0), got %v", g.Pose.Position)
	}
}

func TestUpdateMovesObserver(t *testing.T) {
	g, input := newTestGame(t)
	first := g.Frame

	input.Tap(render.KeyW)
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	input.Release()

	if g.Pose.Position != geometry.Pt(20, 0) {
		t.Errorf("Expected (20, 0), got %v", g.Pose.Position)
	}
	if g.Frame == first {
		t.Error("Expected a new frame after moving")
	}

	input.Tap(render.KeyA)
	input.Tap(render.KeyLeft)
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	input.Release()
	if g.Pose.Sweep.Facing != 10 {
		t.Errorf("Expected one 10° turn for two keys bound to it, got %g", g.Pose.Sweep.Facing)
	}

	input.Tap(render.KeyMinus)
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Pose.Sweep.FOV != 110 || len(g.Frame.Columns) != 110 {
		t.Errorf("Expected fov 110 with 110 columns, got %g and %d", g.Pose.Sweep.FOV, len(g.Frame.Columns))
	}
}

func TestUpdateIdleKeepsFrame(t *testing.T) {
	g, _ := newTestGame(t)
	first := g.Frame
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Frame != first {
		t.Error("Expected no re-render without input")
	}
}

func TestEscapeTerminates(t *testing.T) {
	g, input := newTestGame(t)
	input.Tap(render.KeyEscape)
	if err := g.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated, got %v", err)
	}
}

func TestTabTogglesVisibility(t *testing.T) {
	g, input := newTestGame(t)
	input.Tap(render.KeyTab)
	_ = g.Update()
	if !g.View.ShowVisibility {
		t.Error("Expected visibility overlay on")
	}
}

func TestDrawAndLayout(t *testing.T) {
	g, _ := newTestGame(t)
	if g.Display() != DisplaySplit {
		t.Errorf("Expected split display by default, got %v", g.Display())
	}
	if w, h := g.Layout(1920, 1080); w != 1200 || h != 350 {
		t.Errorf("Expected 1200x350 with the map, got %dx%d", w, h)
	}
	screen := rendertest.NewImage(1200, 350)
	g.Draw(screen)
	if len(screen.Drawn) != 2 {
		t.Errorf("Expected map and world drawn, got %d images", len(screen.Drawn))
	}

	if err := g.SetDisplay(DisplayWorld); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if w, _ := g.Layout(1920, 1080); w != 600 {
		t.Errorf("Expected 600 wide without the map, got %d", w)
	}
	screen = rendertest.NewImage(600, 350)
	g.Draw(screen)
	if len(screen.Drawn) != 1 || screen.Drawn[0] != g.world {
		t.Errorf("Expected only the world view, got %d images", len(screen.Drawn))
	}
}

func TestMapTracesPlainHits(t *testing.T) {
	g, _ := newTestGame(t)
	if len(g.Trace) != len(g.Frame.Hits) {
		t.Fatalf("Expected the split map to trace the view's %d rays, got %d", len(g.Frame.Hits), len(g.Trace))
	}
	for i, hit := range g.Trace {
		if hit.Distance != hit.RawDistance {
			t.Errorf("Ray %d: expected an uncorrected distance, got %g vs raw %g", i, hit.Distance, hit.RawDistance)
		}
		if hit.Point != g.Frame.Hits[i].Point {
			t.Errorf("Ray %d: expected the map to land where the view does, got %v vs %v", i, hit.Point, g.Frame.Hits[i].Point)
		}
	}

	r := g.Renderer.(*rendertest.Renderer)
	r.Reset()
	g.Draw(rendertest.NewImage(1200, 350))
	overview := g.overview.(*rendertest.Image)
	want := len(g.Scene.Walls())
	for _, hit := range g.Trace {
		if hit.Hit {
			want++
		}
	}
	if got := r.Count("line", overview); got != want {
		t.Errorf("Expected %d map lines (walls plus traced rays), got %d", want, got)
	}
}

func TestMapOnlyTracesFullCircle(t *testing.T) {
	g, input := newTestGame(t)
	if err := g.SetDisplay(DisplayMap); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(g.Trace) != 360 {
		t.Fatalf("Expected a 360-ray trace, got %d", len(g.Trace))
	}
	if len(g.Frame.Columns) != 120 {
		t.Errorf("Expected the view's own sweep left alone, got %d columns", len(g.Frame.Columns))
	}
	if w, h := g.Layout(1920, 1080); w != 600 || h != 350 {
		t.Errorf("Expected 600x350 for the map alone, got %dx%d", w, h)
	}

	screen := rendertest.NewImage(600, 350)
	g.Draw(screen)
	if len(screen.Drawn) != 1 || screen.Drawn[0] != g.overview {
		t.Errorf("Expected only the map drawn, got %d images", len(screen.Drawn))
	}

	input.Tap(render.KeyD)
	if err := g.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(g.Trace) != 360 || g.Trace[0].Angle != g.Pose.Sweep.Facing+180 {
		t.Errorf("Expected the full circle to follow the new facing %g, got first ray at %g", g.Pose.Sweep.Facing, g.Trace[0].Angle)
	}
}

func TestWidenStopsAtPerspectiveLimit(t *testing.T) {
	g, input := newTestGame(t)
	for i := 0; i < 30; i++ {
		input.Tap(render.KeyPlus)
		if err := g.Update(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		input.Release()
	}
	if g.Pose.Sweep.FOV != raycast.MaxPerspectiveFOV {
		t.Errorf("Expected FOV to stop at %g, got %g", raycast.MaxPerspectiveFOV, g.Pose.Sweep.FOV)
	}
	if len(g.Frame.Columns) != int(raycast.MaxPerspectiveFOV) {
		t.Errorf("Expected a rendered frame at the widest FOV, got %d columns", len(g.Frame.Columns))
	}
	for _, col := range g.Frame.Columns {
		if col.Wall && col.Distance <= 0 {
			t.Errorf("Column %d: expected a positive distance, got %g", col.Index, col.Distance)
		}
	}
}

func TestParseDisplay(t *testing.T) {
	for _, d := range []Display{DisplaySplit, DisplayWorld, DisplayMap} {
		got, err := ParseDisplay(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDisplay(%q): expected %v, got %v (%v)", d.String(), d, got, err)
		}
	}
	if _, err := ParseDisplay("sideways"); err == nil {
		t.Error("Expected an unknown display to fail")
	}
}
