package raycast

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/slatcaster/internal/core/geometry"
)

// DefaultFarDistance is the default ray reach. Every wall must lie closer
// than this to any observer position or rays will miss it.
const DefaultFarDistance = 2000.0

// Mode selects whether hit distances are fisheye-corrected
type Mode int

const (
	// ModePerspective applies the cosine correction for a flat first-person projection.
	ModePerspective Mode = iota
	// ModePlain reports raw Euclidean distances, as a top-down 2D view wants.
	ModePlain
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModePerspective:
		return "perspective"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config string to a Mode. An empty string selects
// the perspective mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perspective":
		return ModePerspective, nil
	case "plain", "2d":
		return ModePlain, nil
	default:
		return 0, fmt.Errorf("unknown projection mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Field of view limits per mode, in degrees. The cosine correction reaches
// zero at ±90°, so a perspective sweep must stay below 180°.
const (
	MaxPlainFOV       = 360.0
	MaxPerspectiveFOV = 170.0
)

// ErrInvalidReach is returned for a non-positive or non-finite far distance.
var ErrInvalidReach = errors.New("far distance must be positive and finite")

// HitRecord is the outcome of one cast. The zero value is a miss; Point,
// Distance and Wall are only meaningful when Hit is true.
type HitRecord struct {
	Angle       float64        `json:"angle"`
	Hit         bool           `json:"hit"`
	Point       geometry.Point `json:"point"`
	Distance    float64        `json:"distance"`
	RawDistance float64        `json:"raw_distance"`
	Wall        int            `json:"wall"`
}

// Miss builds the no-hit record for a ray at angle
func Miss(angle float64) HitRecord {
	return HitRecord{Angle: angle, Wall: -1}
}

// Caster casts rays against a fixed wall list.
type Caster struct {
	FarDistance float64
	Epsilon     float64
	Mode        Mode
	// SnapToGrid truncates hit points to integer world coordinates.
	SnapToGrid bool
}

// NewCaster returns a perspective caster with the default reach
func NewCaster() *Caster {
	return &Caster{
		FarDistance: DefaultFarDistance,
		Epsilon:     geometry.DefaultEpsilon,
		Mode:        ModePerspective,
	}
}

// Validate checks the caster's constants
func (c *Caster) Validate() error {
	if !(c.FarDistance > 0) || math.IsInf(c.FarDistance, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidReach, c.FarDistance)
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
		return fmt.Errorf("epsilon must be non-negative, got %g", c.Epsilon)
	}
	return nil
}

// MaxFOV is the widest sweep the caster's mode allows
func (c *Caster) MaxFOV() float64 {
	if c.Mode == ModePerspective {
		return MaxPerspectiveFOV
	}
	return MaxPlainFOV
}

// Cast fires one ray from origin toward angleDeg and returns the nearest
// wall it hits. In perspective mode the distance is scaled by the cosine
// of the offset from refAngleDeg.
func (c *Caster) Cast(origin geometry.Point, angleDeg float64, walls []geometry.Segment, refAngleDeg float64) HitRecord {
	body := Ray{Origin: origin, Angle: angleDeg}.Segment(c.FarDistance)

	best := Miss(angleDeg)
	minDist := math.Inf(1)
	for i, wall := range walls {
		in, ok := geometry.IntersectWithin(wall, body, c.Epsilon)
		if !ok {
			continue
		}
		p := in.Point
		if c.SnapToGrid {
			p = p.Truncate()
		}
		dist := geometry.Distance(origin, p)
		if dist < minDist {
			minDist = dist
			best.Hit = true
			best.Point = p
			best.RawDistance = dist
			best.Wall = i
		}
	}

	if !best.Hit {
		return best
	}

	best.Distance = best.RawDistance
	if c.Mode == ModePerspective {
		best.Distance *= FisheyeFactor(angleDeg, refAngleDeg)
	}
	return best
}

// FisheyeFactor is cos(|angle - ref|), the correction that keeps flat
// walls flat in the projected view.
func FisheyeFactor(angleDeg, refAngleDeg float64) float64 {
	return math.Cos(mgl64.DegToRad(math.Abs(angleDeg - refAngleDeg)))
}
