// Package game runs the interactive viewer: it turns key presses into pose
// changes, renders a frame per pose and shows the map beside the
// first-person view.
package game

import (
	"fmt"
	"log"

	"chosenoffset.com/slatcaster/internal/control"
	"chosenoffset.com/slatcaster/internal/core/raycast"
	"chosenoffset.com/slatcaster/internal/render"
	"chosenoffset.com/slatcaster/internal/scene"
	"chosenoffset.com/slatcaster/internal/view"
)

// Display selects which views the window shows
type Display int

const (
	DisplaySplit Display = iota // map on the left, first-person view on the right
	DisplayWorld                // first-person view only
	DisplayMap                  // top-down map only, traced all the way round
)

var displayNames = map[Display]string{
	DisplaySplit: "split",
	DisplayWorld: "world",
	DisplayMap:   "map",
}

func (d Display) String() string {
	if name, ok := displayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Display(%d)", int(d))
}

// ParseDisplay looks a display up by name
func ParseDisplay(name string) (Display, error) {
	for d, n := range displayNames {
		if n == name {
			return d, nil
		}
	}
	return DisplaySplit, fmt.Errorf("unknown display %q", name)
}

// mapStep is the angular step of the full-circle trace in DisplayMap.
const mapStep = 1.0

// Game holds the viewer state.
type Game struct {
	Scene      *scene.Scene
	View       *view.View
	Renderer   render.Renderer
	InputMgr   render.InputManager
	Controller *control.Controller

	Pose  scene.Pose
	Frame *scene.Frame
	// Trace holds the plain hits drawn on the map.
	Trace []raycast.HitRecord

	display  Display
	world    render.Image
	overview render.Image
}

// New creates a split-screen viewer for s starting at the scene's
// configured pose.
func New(s *scene.Scene, r render.Renderer, input render.InputManager) (*Game, error) {
	g := &Game{
		Scene:      s,
		View:       view.New(r, s),
		Renderer:   r,
		InputMgr:   input,
		Controller: control.ForScene(s),
	}
	if err := g.refresh(s.StartPose()); err != nil {
		return nil, err
	}
	return g, nil
}

// Display returns the current display
func (g *Game) Display() Display { return g.display }

// SetDisplay switches views and re-traces the map for the new display
func (g *Game) SetDisplay(d Display) error {
	prev := g.display
	g.display = d
	if err := g.refresh(g.Pose); err != nil {
		g.display = prev
		return err
	}
	return nil
}

// mapPose is the pose the map traces: the observer's own sweep, or a full
// circle when the map is shown alone.
func (g *Game) mapPose(p scene.Pose) scene.Pose {
	if g.display == DisplayMap {
		p.Sweep.FOV = raycast.MaxPlainFOV
		p.Sweep.Step = mapStep
	}
	return p
}

// refresh renders p and makes it the current pose. On error nothing changes.
func (g *Game) refresh(p scene.Pose) error {
	frame, err := g.Scene.RenderFrame(p)
	if err != nil {
		return err
	}
	trace, err := g.Scene.Trace(g.mapPose(p))
	if err != nil {
		return err
	}
	g.Pose = p
	g.Frame = frame
	g.Trace = trace
	return nil
}

// Update handles one tick of input.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrTerminated
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		g.View.ShowVisibility = !g.View.ShowVisibility
	}

	cmds := pendingCommands(g.InputMgr)
	if len(cmds) == 0 {
		return nil
	}

	next := g.Pose
	for _, cmd := range cmds {
		next = g.Controller.Apply(next, cmd)
	}
	if err := g.refresh(next); err != nil {
		// Keep showing the last good frame.
		log.Printf("Rejected pose %+v: %v", next, err)
	}
	return nil
}

// Draw renders the current frame to the screen.
func (g *Game) Draw(screen render.Image) {
	size := g.Scene.Viewport()
	if g.world == nil {
		g.world = g.Renderer.NewImage(size.X, size.Y)
		g.overview = g.Renderer.NewImage(size.X, size.Y)
	}

	if g.display != DisplayWorld {
		g.View.DrawMap(g.overview, g.Pose, g.Trace)
		screen.DrawImage(g.overview, 0, 0)
	}
	if g.display == DisplayMap {
		return
	}

	g.world.Clear()
	g.View.DrawWorld(g.world, g.Frame)
	x := 0.0
	if g.display == DisplaySplit {
		x = float64(size.X)
	}
	screen.DrawImage(g.world, x, 0)
}

// Layout returns a fixed logical size so the views stay pixel exact when
// the window is resized.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.Scene.Viewport()
	if g.display == DisplaySplit {
		return size.X * 2, size.Y
	}
	return size.X, size.Y
}
