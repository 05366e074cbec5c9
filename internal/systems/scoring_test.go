package systems

import (
	"testing"

	"tapdash-server/internal/domain"
)

func scoringTuning() domain.Tuning {
	t := domain.DefaultTuning()
	t.SpeedInterval = 10
	t.SpeedIncrement = 0.01
	return t
}

func TestProgressionSpeedIncrementsOncePerThreshold(t *testing.T) {
	tuning := scoringTuning()
	p := NewProgression(tuning)

	for p.Floor() < 10 {
		p.Tick()
	}
	if p.Increments != 1 {
		t.Fatalf("crossing 10: increments = %d, want 1", p.Increments)
	}
	if want := tuning.BaseSpeed + tuning.SpeedIncrement; p.ObstacleSpeed != want || p.TrailSpeed != want {
		t.Errorf("speed = %v/%v, want %v", p.ObstacleSpeed, p.TrailSpeed, want)
	}

	// Повторная проверка того же порога в том же тике ничего не добавляет
	if n := p.Apply(); n != 0 {
		t.Errorf("re-applying threshold 10 added %d increments", n)
	}

	for p.Floor() < 20 {
		p.Tick()
		if p.Floor() < 20 && p.Increments != 1 {
			t.Fatalf("extra increment at score %v", p.Score)
		}
	}
	if p.Increments != 2 {
		t.Fatalf("crossing 20: increments = %d, want 2", p.Increments)
	}
}

func TestProgressionJumps(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		add   float64
		want  int
	}{
		{"bonus crosses one threshold", 8, 5, 1},
		{"bonus crosses two thresholds", 0, 25, 2},
		{"bonus below threshold", 1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgression(scoringTuning())
			p.Add(tt.start)
			before := p.Increments
			p.Add(tt.add)
			if got := p.Increments - before; got != tt.want {
				t.Errorf("increments = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgressionReset(t *testing.T) {
	tuning := scoringTuning()
	p := NewProgression(tuning)
	p.Add(35)
	p.Reset()

	if p.Score != 0 || p.Increments != 0 || p.ObstacleSpeed != tuning.BaseSpeed {
		t.Fatalf("reset left state: %+v", p)
	}
	p.Add(10)
	if p.Increments != 1 {
		t.Errorf("threshold 10 must apply again after reset, got %d", p.Increments)
	}
}

func TestProgressionDisabledInterval(t *testing.T) {
	tuning := scoringTuning()
	tuning.SpeedInterval = 0
	p := NewProgression(tuning)
	p.Add(100)
	if p.Increments != 0 {
		t.Errorf("increments = %d with interval 0", p.Increments)
	}
}
