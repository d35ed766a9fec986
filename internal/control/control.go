// Package control applies movement, rotation and field-of-view commands
// to an observer pose.
package control

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/raycast"
	"chosenoffset.com/slatcaster/internal/scene"
)

// Command is a single user action
type Command int

const (
	None Command = iota
	Forward
	Backward
	TurnLeft
	TurnRight
	Widen
	Narrow
)

var commandNames = map[Command]string{
	None:      "none",
	Forward:   "forward",
	Backward:  "backward",
	TurnLeft:  "left",
	TurnRight: "right",
	Widen:     "widen",
	Narrow:    "narrow",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand looks a command up by name
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown command %q", name)
}

// Controller holds the step sizes for each command
type Controller struct {
	MoveStep float64 // World units per Forward/Backward
	TurnStep float64 // Degrees per TurnLeft/TurnRight
	FOVStep  float64 // Degrees per Widen/Narrow
	MaxFOV   float64 // Widest FOV Widen reaches
	// Bounds, when non-nil, keeps the observer inside this box.
	Bounds *geometry.Bounds
}

// NewController returns a controller with 10-unit moves and 10° turns
func NewController() *Controller {
	return &Controller{
		MoveStep: 10,
		TurnStep: 10,
		FOVStep:  10,
		MaxFOV:   raycast.MaxPlainFOV,
	}
}

// ForScene returns a controller that keeps poses renderable in s: the
// observer stays inside the scene bounds and the FOV within the scene's
// projection limit.
func ForScene(s *scene.Scene) *Controller {
	c := NewController()
	bounds := s.Bounds()
	c.Bounds = &bounds
	c.MaxFOV = s.MaxFOV()
	return c
}

// Apply returns the pose after cmd. Moves are truncated to whole world
// units; the FOV never narrows below one sweep step.
func (c *Controller) Apply(p scene.Pose, cmd Command) scene.Pose {
	switch cmd {
	case Forward:
		p.Position = c.move(p, 1)
	case Backward:
		p.Position = c.move(p, -1)
	case TurnLeft:
		p.Sweep.Facing += c.TurnStep
	case TurnRight:
		p.Sweep.Facing -= c.TurnStep
	case Widen:
		p.Sweep.FOV = c.clampFOV(p.Sweep.FOV+c.FOVStep, p.Sweep.Step)
	case Narrow:
		p.Sweep.FOV = c.clampFOV(p.Sweep.FOV-c.FOVStep, p.Sweep.Step)
	}
	return p
}

func (c *Controller) move(p scene.Pose, sign float64) geometry.Point {
	delta := geometry.Direction(p.Sweep.Facing).Scale(c.MoveStep).Truncate()
	next := p.Position.Add(delta.Scale(sign))
	if c.Bounds != nil {
		next.X = mgl64.Clamp(next.X, c.Bounds.Min.X, c.Bounds.Max.X)
		next.Y = mgl64.Clamp(next.Y, c.Bounds.Min.Y, c.Bounds.Max.Y)
	}
	return next
}

func (c *Controller) clampFOV(fov, step float64) float64 {
	return mgl64.Clamp(fov, math.Max(step, 1), c.MaxFOV)
}
