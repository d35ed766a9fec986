// Package scene composes the ray caster and the projector over a fixed
// wall list. Scenes are loaded from JSON files so each level can define
// its own walls and rendering constants.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/projection"
	"chosenoffset.com/slatcaster/internal/core/raycast"
)

// Wall is a pair of integer (x, y) endpoints in world coordinates
type Wall [2][2]int

// Segment converts the wall to world geometry
func (w Wall) Segment() geometry.Segment {
	return geometry.Seg(geometry.Pt(w[0][0], w[0][1]), geometry.Pt(w[1][0], w[1][1]))
}

// Config holds everything needed to build a Scene
type Config struct {
	Name  string `json:"name"`
	Walls []Wall `json:"walls"`

	// Viewport is the [width, height] of each view in pixels.
	Viewport [2]int `json:"size"`
	// Origin translates world coordinates to screen coordinates.
	Origin [2]int `json:"origin"`

	WallHeight    int             `json:"wall_h"`   // Full slat height for the nearest walls; 0 means a quarter of the viewport each way
	WallMinHeight int             `json:"wall_min"` // Smallest slat half-height; 0 means a sixteenth of the viewport
	WallColor     *projection.RGB `json:"wall_clr"`

	FarDistance float64      `json:"far_distance"`
	Epsilon     float64      `json:"epsilon"`
	Mode        raycast.Mode `json:"mode"`
	SnapToGrid  bool         `json:"snap_to_grid"`
	Workers     int          `json:"workers"` // Goroutines per sweep; 1 sweeps serially

	// Starting observer pose
	Start  [2]int  `json:"start"`
	Facing float64 `json:"facing"`
	FOV    float64 `json:"fov"`
	Step   float64 `json:"step"`
}

// defaultWalls is the demo level: an outer room with two pillars and a
// few partitions.
var defaultWalls = []Wall{
	{{-300, 175}, {300, 175}},
	{{-300, -175}, {300, -175}},
	{{-300, -175}, {-300, 175}},
	{{300, -175}, {300, 175}},

	{{-25, 100}, {25, 100}},
	{{-25, 50}, {25, 50}},
	{{25, 50}, {25, 100}},
	{{-25, 50}, {-25, 100}},

	{{-25, -100}, {25, -100}},
	{{-25, -175}, {25, -175}},
	{{25, -100}, {25, -175}},
	{{-25, -100}, {-25, -175}},

	{{250, -100}, {250, 100}},
	{{150, -100}, {250, -100}},
	{{150, 100}, {250, 100}},
	{{150, 0}, {150, 100}},
	{{150, -50}, {150, -100}},

	{{-150, -50}, {-150, -175}},
	{{-150, -50}, {-250, -50}},

	{{-300, 50}, {-100, 50}},
}

// DefaultConfig returns the demo level with a 120° perspective view
func DefaultConfig() *Config {
	walls := make([]Wall, len(defaultWalls))
	copy(walls, defaultWalls)
	return &Config{
		Name:        "demo",
		Walls:       walls,
		Viewport:    [2]int{600, 350},
		Origin:      [2]int{300, 175},
		FarDistance: raycast.DefaultFarDistance,
		Epsilon:     geometry.DefaultEpsilon,
		Mode:        raycast.ModePerspective,
		Workers:     1,
		Start:       [2]int{10, 0},
		Facing:      0,
		FOV:         120,
		Step:        1,
	}
}

// LoadConfig loads a scene config from a JSON file. Fields missing from
// the file keep their defaults, and a missing file yields the demo level.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config %s: %w", path, err)
	}

	return config, nil
}

// wallHalfMax resolves the nearest-wall slat half-height
func (c *Config) wallHalfMax() int {
	if c.WallHeight > 0 {
		return c.WallHeight / 2
	}
	return c.Viewport[1] / 4
}

// wallHalfMin resolves the farthest-wall slat half-height
func (c *Config) wallHalfMin() int {
	if c.WallMinHeight > 0 {
		return c.WallMinHeight
	}
	return c.Viewport[1] / 16
}

// wallColor resolves the base wall colour
func (c *Config) wallColor() projection.RGB {
	if c.WallColor != nil {
		return *c.WallColor
	}
	return projection.White
}

// StartPose returns the observer pose the scene opens with
func (c *Config) StartPose() Pose {
	return Pose{
		Position: geometry.Pt(c.Start[0], c.Start[1]),
		Sweep:    raycast.Sweep{Facing: c.Facing, FOV: c.FOV, Step: c.Step},
	}
}
