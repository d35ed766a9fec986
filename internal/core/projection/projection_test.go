package projection

import (
	"encoding/json"
	"testing"

	"chosenoffset.com/slatcaster/internal/core/geometry"
	"chosenoffset.com/slatcaster/internal/core/raycast"
)

func testProjector() *Projector {
	return &Projector{
		ViewportWidth:  600,
		ViewportHeight: 350,
		Horizon:        175,
		WallHalfMax:    350 / 4,
		WallHalfMin:    350 / 16,
		BaseColor:      White,
	}
}

func hitAt(d float64) raycast.HitRecord {
	return raycast.HitRecord{Hit: true, Distance: d, RawDistance: d, Point: geometry.Point{X: d}}
}

func TestInterp(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{-5, 80},
		{0, 80},
		{50, 60},
		{100, 40},
		{200, 40},
	}
	for _, tc := range tests {
		if got := Interp(tc.x, 0, 100, 80, 40); got != tc.want {
			t.Errorf("Interp(%g): expected %g, got %g", tc.x, tc.want, got)
		}
	}
}

func TestProjectMissIsEmpty(t *testing.T) {
	p := testProjector()
	col := p.Project(3, raycast.Miss(10), raycast.Sweep{FOV: 120, Step: 1})
	if col.Wall {
		t.Error("Expected no slat for a miss")
	}
	if col.HalfHeight != 0 || !col.Rect().Empty() {
		t.Errorf("Expected empty column, got %+v", col)
	}
	if col.Index != 3 || col.X0 != 15 || col.X1 != 20 {
		t.Errorf("Expected column 3 to span 15..20, got %d..%d", col.X0, col.X1)
	}
}

func TestProjectHeightIsMonotonic(t *testing.T) {
	p := testProjector()
	s := raycast.Sweep{FOV: 120, Step: 1}

	prev := p.Project(0, hitAt(0), s).HalfHeight
	if prev != p.WallHalfMax {
		t.Errorf("Expected max half-height %d at distance 0, got %d", p.WallHalfMax, prev)
	}
	for d := 1.0; d <= 1000; d += 3.7 {
		h := p.Project(0, hitAt(d), s).HalfHeight
		if h > prev {
			t.Errorf("Expected non-increasing height, got %d after %d at distance %g", h, prev, d)
		}
		if h < p.WallHalfMin {
			t.Errorf("Expected height >= %d, got %d at distance %g", p.WallHalfMin, h, d)
		}
		prev = h
	}
	if prev != p.WallHalfMin {
		t.Errorf("Expected far walls at the minimum %d, got %d", p.WallHalfMin, prev)
	}
}

func TestProjectSlatCentredOnHorizon(t *testing.T) {
	p := testProjector()
	col := p.Project(0, hitAt(100), raycast.Sweep{FOV: 120, Step: 1})
	if !col.Wall {
		t.Fatal("Expected a slat")
	}
	if col.Top != p.Horizon-col.HalfHeight || col.Bottom != p.Horizon+col.HalfHeight {
		t.Errorf("Expected slat centred on %d, got %d..%d", p.Horizon, col.Top, col.Bottom)
	}
	// 87 + (100/350)*(21-87) = 68.14...
	if col.HalfHeight != 68 {
		t.Errorf("Expected half-height 68, got %d", col.HalfHeight)
	}
}

func TestShadeFalloff(t *testing.T) {
	p := testProjector()
	if c := p.Shade(0); c != White {
		t.Errorf("Expected base colour at distance 0, got %v", c)
	}
	if c := p.Shade(350); c != (RGB{}) {
		t.Errorf("Expected black at the viewport height, got %v", c)
	}
	if c := p.Shade(5000); c != (RGB{}) {
		t.Errorf("Expected black beyond the viewport height, got %v", c)
	}
	// Squared falloff: halfway in distance keeps three quarters of the brightness.
	if c := p.Shade(175); c.R != 191 {
		t.Errorf("Expected red 191 at half distance, got %d", c.R)
	}

	p.BaseColor = RGB{200, 100, 0}
	c := p.Shade(175)
	if c != (RGB{150, 75, 0}) {
		t.Errorf("Expected (150, 75, 0), got %v", c)
	}
}

func TestColumnsTileViewport(t *testing.T) {
	p := testProjector()
	for _, s := range []raycast.Sweep{
		{FOV: 120, Step: 1},
		{FOV: 90, Step: 1},
		{FOV: 60, Step: 0.5},
		{FOV: 70, Step: 3.5},
	} {
		hits := make([]raycast.HitRecord, s.Count())
		cols := p.ProjectAll(hits, s)
		if cols[0].X0 != 0 {
			t.Errorf("fov=%g step=%g: expected first column at 0, got %d", s.FOV, s.Step, cols[0].X0)
		}
		for i := 1; i < len(cols); i++ {
			if cols[i].X0 != cols[i-1].X1 {
				t.Errorf("fov=%g step=%g: gap between columns %d and %d", s.FOV, s.Step, i-1, i)
			}
		}
		if last := cols[len(cols)-1].X1; last != p.ViewportWidth {
			t.Errorf("fov=%g step=%g: expected last column to end at %d, got %d", s.FOV, s.Step, p.ViewportWidth, last)
		}
	}
}

func TestProjectorValidate(t *testing.T) {
	p := testProjector()
	if err := p.Validate(); err != nil {
		t.Errorf("Expected valid projector, got %v", err)
	}
	p.ViewportHeight = 0
	if err := p.Validate(); err == nil {
		t.Error("Expected error for zero viewport height")
	}
	p = testProjector()
	p.WallHalfMax = 1
	if err := p.Validate(); err == nil {
		t.Error("Expected error when max is below min")
	}
}

func TestRGBJSON(t *testing.T) {
	data, err := json.Marshal(RGB{1, 2, 3})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != "[1,2,3]" {
		t.Errorf("Expected [1,2,3], got %s", data)
	}

	var c RGB
	if err := json.Unmarshal([]byte("[255, 128, 0]"), &c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c != (RGB{255, 128, 0}) {
		t.Errorf("Expected (255, 128, 0), got %v", c)
	}
	if err := json.Unmarshal([]byte("[256, 0, 0]"), &c); err == nil {
		t.Error("Expected out of range channel to fail")
	}
	if err := json.Unmarshal([]byte("[1, 2]"), &c); err == nil {
		t.Error("Expected two channels to fail")
	}
}
