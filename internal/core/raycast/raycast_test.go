package raycast

import (
	"errors"
	"math"
	"testing"

	"chosenoffset.com/slatcaster/internal/core/geometry"
)

// squareRoom returns the four walls of a 200x200 room centred on the origin.
func squareRoom() []geometry.Segment {
	corners := []geometry.Point{
		geometry.Pt(-100, -100), geometry.Pt(100, -100), geometry.Pt(100, 100), geometry.Pt(-100, 100),
	}
	walls := make([]geometry.Segment, 0, len(corners))
	for i := range corners {
		walls = append(walls, geometry.Seg(corners[i], corners[(i+1)%len(corners)]))
	}
	return walls
}

func TestCastCentralRay(t *testing.T) {
	c := NewCaster()
	hit := c.Cast(geometry.Point{}, 0, squareRoom(), 0)
	if !hit.Hit {
		t.Fatal("Expected central ray to hit the east wall")
	}
	if hit.Distance != 100 {
		t.Errorf("Expected distance 100, got %g", hit.Distance)
	}
	if hit.Distance != hit.RawDistance {
		t.Errorf("Expected zero offset correction to be identity, got raw %g corrected %g", hit.RawDistance, hit.Distance)
	}
	if hit.Point != (geometry.Point{X: 100, Y: 0}) {
		t.Errorf("Expected hit at (100, 0), got %v", hit.Point)
	}
	if hit.Wall != 1 {
		t.Errorf("Expected east wall (index 1), got %d", hit.Wall)
	}
}

func TestCastFisheyeCorrection(t *testing.T) {
	walls := []geometry.Segment{geometry.Seg(geometry.Pt(100, -500), geometry.Pt(100, 500))}

	perspective := NewCaster()
	plain := NewCaster()
	plain.Mode = ModePlain

	for _, angle := range []float64{-40, -25, -10, 0, 15, 30, 45} {
		hit := perspective.Cast(geometry.Point{}, angle, walls, 0)
		if !hit.Hit {
			t.Fatalf("Expected a hit at %g°", angle)
		}
		if math.Abs(hit.Distance-100) > 1e-9 {
			t.Errorf("Expected corrected distance 100 at %g°, got %g", angle, hit.Distance)
		}

		raw := plain.Cast(geometry.Point{}, angle, walls, 0)
		want := 100 / math.Cos(angle*math.Pi/180)
		if math.Abs(raw.Distance-want) > 1e-9 {
			t.Errorf("Expected raw distance %g at %g°, got %g", want, angle, raw.Distance)
		}

		self := perspective.Cast(geometry.Point{}, angle, walls, angle)
		if math.Abs(self.Distance-self.RawDistance) > 1e-12 {
			t.Errorf("Expected correction against its own angle to be identity at %g°", angle)
		}
	}
}

func TestCastPicksNearestWall(t *testing.T) {
	walls := []geometry.Segment{
		geometry.Seg(geometry.Pt(100, -10), geometry.Pt(100, 10)),
		geometry.Seg(geometry.Pt(50, -10), geometry.Pt(50, 10)),
		geometry.Seg(geometry.Pt(75, -10), geometry.Pt(75, 10)),
	}
	hit := NewCaster().Cast(geometry.Point{}, 0, walls, 0)
	if !hit.Hit || hit.Distance != 50 || hit.Wall != 1 {
		t.Errorf("Expected nearest wall 1 at distance 50, got %+v", hit)
	}
}

func TestCastMiss(t *testing.T) {
	c := NewCaster()

	hit := c.Cast(geometry.Point{}, 0, nil, 0)
	if hit.Hit {
		t.Errorf("Expected a miss with no walls, got %+v", hit)
	}
	if hit.Wall != -1 {
		t.Errorf("Expected wall index -1 on a miss, got %d", hit.Wall)
	}

	// Facing away from the only wall.
	walls := []geometry.Segment{geometry.Seg(geometry.Pt(100, -10), geometry.Pt(100, 10))}
	if hit := c.Cast(geometry.Point{}, 180, walls, 180); hit.Hit {
		t.Errorf("Expected a miss facing away, got %+v", hit)
	}

	// A reach shorter than the scene silently misses.
	short := NewCaster()
	short.FarDistance = 50
	if hit := short.Cast(geometry.Point{}, 0, walls, 0); hit.Hit {
		t.Errorf("Expected a miss when the wall is beyond reach, got %+v", hit)
	}
}

func TestCastSnapToGrid(t *testing.T) {
	walls := []geometry.Segment{geometry.Seg(geometry.Pt(100, -500), geometry.Pt(100, 500))}
	c := NewCaster()
	c.SnapToGrid = true
	hit := c.Cast(geometry.Point{}, 10, walls, 10)
	if !hit.Hit {
		t.Fatal("Expected a hit")
	}
	if hit.Point.Y != math.Trunc(hit.Point.Y) {
		t.Errorf("Expected integer Y, got %g", hit.Point.Y)
	}
	if hit.Point.Y != 17 {
		t.Errorf("Expected truncated Y 17, got %g", hit.Point.Y)
	}
}

func TestCasterValidate(t *testing.T) {
	c := NewCaster()
	if err := c.Validate(); err != nil {
		t.Errorf("Expected default caster to be valid, got %v", err)
	}
	c.FarDistance = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidReach) {
		t.Errorf("Expected ErrInvalidReach, got %v", err)
	}
	c.FarDistance = math.Inf(1)
	if err := c.Validate(); !errors.Is(err, ErrInvalidReach) {
		t.Errorf("Expected ErrInvalidReach for infinite reach, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModePerspective, false},
		{"perspective", ModePerspective, false},
		{"Plain", ModePlain, false},
		{"2d", ModePlain, false},
		{"isometric", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q): unexpected error state %v", tc.in, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseMode(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
