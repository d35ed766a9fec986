package scene

import (
	"errors"
	"fmt"
	"image"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/projection"
	"chosenoffset.com/slatcaster/internal/core/raycast"
)

var (
	ErrEmptyScene         = errors.New("scene has no walls")
	ErrDegenerateWall     = errors.New("wall has zero length")
	ErrWallOutOfRange     = errors.New("scene extends beyond the ray far distance")
	ErrObserverOutOfRange = errors.New("observer is outside the scene bounds")
)

// Pose is where the observer stands and how it looks around
type Pose struct {
	Position geometry.Point `json:"position"`
	Sweep    raycast.Sweep  `json:"sweep"`
}

// Frame is one rendered view: the hits for the top-down overlay and the
// projected columns for the first-person view, both in column order.
type Frame struct {
	Pose    Pose                `json:"pose"`
	Hits    []raycast.HitRecord `json:"hits"`
	Columns []projection.Column `json:"columns"`
	Horizon int                 `json:"horizon"`
}

// Scene is an immutable wall list plus the constants used to render it.
// It is safe for concurrent use.
type Scene struct {
	name      string
	walls     []geometry.Segment
	bounds    geometry.Bounds
	caster    raycast.Caster
	projector projection.Projector
	origin    geometry.Origin
	viewport  image.Point
	workers   int
	start     Pose
}

// New validates cfg and builds the scene
func New(cfg *Config) (*Scene, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	walls := make([]geometry.Segment, len(cfg.Walls))
	for i, w := range cfg.Walls {
		walls[i] = w.Segment()
	}

	// The world origin is included so the default observer position is
	// always inside the checked area.
	bounds := geometry.BoundsOf(walls, geometry.Point{})
	if bounds.Diagonal() >= cfg.FarDistance {
		return nil, fmt.Errorf("%w: extent %.1f, far distance %.1f", ErrWallOutOfRange, bounds.Diagonal(), cfg.FarDistance)
	}

	origin := geometry.Origin{X: cfg.Origin[0], Y: cfg.Origin[1]}
	s := &Scene{
		name:   cfg.Name,
		walls:  walls,
		bounds: bounds,
		caster: raycast.Caster{
			FarDistance: cfg.FarDistance,
			Epsilon:     cfg.Epsilon,
			Mode:        cfg.Mode,
			SnapToGrid:  cfg.SnapToGrid,
		},
		projector: projection.Projector{
			ViewportWidth:  cfg.Viewport[0],
			ViewportHeight: cfg.Viewport[1],
			Horizon:        origin.Horizon(cfg.Viewport[1]),
			WallHalfMax:    cfg.wallHalfMax(),
			WallHalfMin:    cfg.wallHalfMin(),
			BaseColor:      cfg.wallColor(),
		},
		origin:   origin,
		viewport: image.Pt(cfg.Viewport[0], cfg.Viewport[1]),
		workers:  max(cfg.Workers, 1),
		start:    cfg.StartPose(),
	}

	if err := s.caster.Validate(); err != nil {
		return nil, err
	}
	if err := s.projector.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPose(&s.caster, s.start); err != nil {
		return nil, fmt.Errorf("invalid start pose: %w", err)
	}
	return s, nil
}

// validateConfig checks the config before any geometry is built
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("scene config is required")
	}
	if len(cfg.Walls) == 0 {
		return ErrEmptyScene
	}
	for i, w := range cfg.Walls {
		if w[0] == w[1] {
			return fmt.Errorf("%w: wall %d at (%d, %d)", ErrDegenerateWall, i, w[0][0], w[0][1])
		}
	}
	if cfg.Viewport[0] <= 0 || cfg.Viewport[1] <= 0 {
		return fmt.Errorf("invalid viewport size: %dx%d", cfg.Viewport[0], cfg.Viewport[1])
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", cfg.Workers)
	}
	return nil
}

// Name returns the scene's display name
func (s *Scene) Name() string { return s.name }

// Walls returns a copy of the wall segments
func (s *Scene) Walls() []geometry.Segment {
	walls := make([]geometry.Segment, len(s.walls))
	copy(walls, s.walls)
	return walls
}

// Bounds is the area observers may stand in
func (s *Scene) Bounds() geometry.Bounds { return s.bounds }

// Origin is the world-to-screen translation
func (s *Scene) Origin() geometry.Origin { return s.origin }

// Viewport is the size of each view in pixels
func (s *Scene) Viewport() image.Point { return s.viewport }

// Projector returns the scene's slat geometry
func (s *Scene) Projector() projection.Projector { return s.projector }

// StartPose is the pose the scene was configured to open with
func (s *Scene) StartPose() Pose { return s.start }

// MaxFOV is the widest field of view RenderFrame accepts
func (s *Scene) MaxFOV() float64 { return s.caster.MaxFOV() }

func (s *Scene) checkPose(c *raycast.Caster, p Pose) error {
	if err := c.ValidateSweep(p.Sweep); err != nil {
		return err
	}
	if !s.bounds.Contains(p.Position) {
		return fmt.Errorf("%w: %v", ErrObserverOutOfRange, p.Position)
	}
	return nil
}

// sweep casts every column of p with the given caster
func (s *Scene) sweep(c *raycast.Caster, p Pose) ([]raycast.HitRecord, error) {
	if s.workers > 1 {
		return c.SweepParallel(p.Position, p.Sweep, s.walls, s.workers)
	}
	return c.SweepAll(p.Position, p.Sweep, s.walls)
}

// RenderFrame sweeps the pose's field of view and projects every column.
func (s *Scene) RenderFrame(p Pose) (*Frame, error) {
	if err := s.checkPose(&s.caster, p); err != nil {
		return nil, err
	}

	hits, err := s.sweep(&s.caster, p)
	if err != nil {
		return nil, err
	}

	return &Frame{
		Pose:    p,
		Hits:    hits,
		Columns: s.projector.ProjectAll(hits, p.Sweep),
		Horizon: s.projector.Horizon,
	}, nil
}

// Trace sweeps the pose without fisheye correction, for a plain top-down
// view of where rays land. Any FOV up to 360° is allowed, whatever the
// scene's mode.
func (s *Scene) Trace(p Pose) ([]raycast.HitRecord, error) {
	plain := s.caster
	plain.Mode = raycast.ModePlain
	if err := s.checkPose(&plain, p); err != nil {
		return nil, err
	}
	return s.sweep(&plain, p)
}

// VisibleArea returns the polygon of floor visible from pos
func (s *Scene) VisibleArea(pos geometry.Point) []geometry.Point {
	return s.caster.VisibilityPolygon(pos, s.walls, s.caster.FarDistance)
}
