package domain

import "testing"

func TestParseObstacleType(t *testing.T) {
	tests := []struct {
		input    string
		expected ObstacleType
	}{
		{"asteroid", ObstacleAsteroid},
		{"PLANET", ObstaclePlanet},
		{"Satellite", ObstacleSatellite},
		{"wormhole", ObstacleWormhole},
		{"spike", ObstacleUnknown},
		{"", ObstacleUnknown},
	}

	for _, tt := range tests {
		result := ParseObstacleType(tt.input)
		if result != tt.expected {
			t.Errorf("ParseObstacleType(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestObstacleType_String(t *testing.T) {
	tests := []struct {
		typ      ObstacleType
		expected string
	}{
		{ObstacleAsteroid, "asteroid"},
		{ObstacleWormhole, "wormhole"},
		{ObstacleUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("ObstacleType(%d).String() = %q, want %q", tt.typ, got, tt.expected)
		}
	}
}

func TestObstacleCatalog(t *testing.T) {
	tests := []struct {
		typ       ObstacleType
		width     float64
		spawnY    float64
		minHeight float64
	}{
		{ObstacleAsteroid, 1.2, 0.8, 0.3},
		{ObstaclePlanet, 1.8, 1.2, 0.7},
		{ObstacleSatellite, 2.0, 1.6, 0.6},
		{ObstacleWormhole, 1.5, 1.05, 0.3},
	}

	for _, tt := range tests {
		spec, ok := SpecFor(tt.typ)
		if !ok {
			t.Fatalf("no spec for %v", tt.typ)
		}
		if spec.Size.X() != tt.width {
			t.Errorf("%v width = %v, want %v", tt.typ, spec.Size.X(), tt.width)
		}
		if diff := spec.SpawnHeight - tt.spawnY; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%v spawn height = %v, want %v", tt.typ, spec.SpawnHeight, tt.spawnY)
		}
		if spec.MinHeight != tt.minHeight {
			t.Errorf("%v min height = %v, want %v", tt.typ, spec.MinHeight, tt.minHeight)
		}
	}

	if _, ok := SpecFor(ObstacleUnknown); ok {
		t.Error("unknown type must not have a spec")
	}
}

func TestPlayerState(t *testing.T) {
	p := NewPlayer()
	if p.State() != Grounded {
		t.Fatalf("new player state = %v", p.State())
	}
	if p.GroundLevel() != PlayerStartY {
		t.Errorf("ground level = %v", p.GroundLevel())
	}

	p.IsJumping, p.DoubleJumpAvailable = true, true
	if p.State() != Jumping {
		t.Errorf("state = %v, want jumping", p.State())
	}
	p.DoubleJumpAvailable = false
	if p.State() != DoubleJumpUsed {
		t.Errorf("state = %v, want double_jump_used", p.State())
	}
}
