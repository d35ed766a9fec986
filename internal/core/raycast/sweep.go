package raycast

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/slatcaster/internal/core/geometry"
)

var (
	// ErrInvalidStep is returned when the angular step is not a positive number.
	ErrInvalidStep = errors.New("sweep step must be positive")
	// ErrInvalidFOV is returned when the field of view is not a positive number
	// is narrower than one step, or is too wide for the caster's mode.
	ErrInvalidFOV = errors.New("field of view must be positive and at least one step wide")
	// ErrTooManySamples is returned when FOV/Step exceeds MaxSamples.
	ErrTooManySamples = errors.New("sweep has too many samples")
)

// MaxSamples caps the rays in one sweep. It is far more columns than any
// viewport has pixels.
const MaxSamples = 1 << 14

// countSlack absorbs floating error in FOV/Step so that 90/1 and 0.3/0.1
// both give the expected whole count.
const countSlack = 1e-9

// Sweep describes one pass of rays across a field of view. Angles are in
// degrees.
type Sweep struct {
	Facing float64 `json:"facing"`
	FOV    float64 `json:"fov"`
	Step   float64 `json:"step"`
}

// Validate rejects sweeps that would divide by zero or loop forever
func (s Sweep) Validate() error {
	if !(s.Step > 0) || math.IsInf(s.Step, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidStep, s.Step)
	}
	if !(s.FOV > 0) || math.IsInf(s.FOV, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidFOV, s.FOV)
	}
	if s.FOV/s.Step > MaxSamples+countSlack {
		return fmt.Errorf("%w: fov %g at step %g exceeds %d", ErrTooManySamples, s.FOV, s.Step, MaxSamples)
	}
	if s.Count() < 1 {
		return fmt.Errorf("%w: fov %g is narrower than step %g", ErrInvalidFOV, s.FOV, s.Step)
	}
	if math.IsNaN(s.Facing) || math.IsInf(s.Facing, 0) {
		return fmt.Errorf("facing must be finite, got %g", s.Facing)
	}
	return nil
}

// Count is the number of rays in the sweep, floor(FOV / Step). Sweeps
// with no valid count return 0.
func (s Sweep) Count() int {
	if !(s.Step > 0) || !(s.FOV > 0) || s.FOV/s.Step > MaxSamples+countSlack {
		return 0
	}
	return int(math.Floor(s.FOV/s.Step + countSlack))
}

// Angle returns the direction of column i. Column 0 is the leftmost
// column on screen, which is the most counter-clockwise angle.
func (s Sweep) Angle(i int) float64 {
	return s.Facing + s.FOV/2 - float64(i)*s.Step
}

// Angles yields (column, angle) pairs in scan order
func (s Sweep) Angles() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		n := s.Count()
		for i := 0; i < n; i++ {
			if !yield(i, s.Angle(i)) {
				return
			}
		}
	}
}

// Rays returns a lazy sequence of per-column hits. Nothing is cast until
// the sequence is ranged over, and each range starts a fresh sweep.
// The sweep must have been validated.
func (c *Caster) Rays(origin geometry.Point, s Sweep, walls []geometry.Segment) iter.Seq2[int, HitRecord] {
	return func(yield func(int, HitRecord) bool) {
		for i, angle := range s.Angles() {
			if !yield(i, c.Cast(origin, angle, walls, s.Facing)) {
				return
			}
		}
	}
}

// ValidateSweep checks s on its own and against the caster's mode: a
// perspective sweep must stay narrower than MaxPerspectiveFOV so that every
// corrected distance is positive.
func (c *Caster) ValidateSweep(s Sweep) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if limit := c.MaxFOV(); s.FOV > limit {
		return fmt.Errorf("%w: %g exceeds %g in %s mode", ErrInvalidFOV, s.FOV, limit, c.Mode)
	}
	return nil
}

// SweepAll validates s and collects every column's hit in order
func (c *Caster) SweepAll(origin geometry.Point, s Sweep, walls []geometry.Segment) ([]HitRecord, error) {
	if err := c.ValidateSweep(s); err != nil {
		return nil, err
	}
	hits := make([]HitRecord, 0, s.Count())
	for _, hit := range c.Rays(origin, s, walls) {
		hits = append(hits, hit)
	}
	return hits, nil
}

// SweepParallel is SweepAll spread over workers goroutines. Columns are
// dealt round robin; each goroutine writes only its own slots so the
// result matches the serial sweep exactly.
func (c *Caster) SweepParallel(origin geometry.Point, s Sweep, walls []geometry.Segment, workers int) ([]HitRecord, error) {
	if err := c.ValidateSweep(s); err != nil {
		return nil, err
	}
	n := s.Count()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	hits := make([]HitRecord, n)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				hits[i] = c.Cast(origin, s.Angle(i), walls, s.Facing)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hits, nil
}
