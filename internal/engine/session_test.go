package engine

import (
	"math"
	"testing"

	"tapdash-server/internal/domain"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// Helper: сессия без отсчета, всплесков и бонусов, сразу в забеге
func newRunningSession(t *testing.T) *Session {
	t.Helper()
	tuning := domain.DefaultTuning()
	tuning.CountdownTicks = 0
	tuning.BurstChance = 0
	tuning.CollectibleChance = 0

	s := NewSession(Config{Seed: 7, Tuning: tuning})
	s.Start()
	if s.Phase() != PhaseRunning {
		t.Fatalf("Session should be running, got %s", s.Phase())
	}
	return s
}

// Helper: астероид прямо на игроке (после сдвига на скорость останется на нем)
func asteroidOnPlayer(id int) *domain.Obstacle {
	spec, _ := domain.SpecFor(domain.ObstacleAsteroid)
	return &domain.Obstacle{
		ID:        id,
		Type:      domain.ObstacleAsteroid,
		Position:  mgl64.Vec3{0, spec.SpawnHeight, -0.1},
		Size:      spec.Size,
		MinHeight: spec.MinHeight,
	}
}

func TestSession_Countdown(t *testing.T) {
	s := NewSession(Config{Seed: 1, Tuning: domain.DefaultTuning()})
	if s.Phase() != PhaseIdle {
		t.Fatalf("New session phase = %s, want idle", s.Phase())
	}

	s.Start()
	if s.Phase() != PhaseCountdown || !s.Player().Frozen {
		t.Fatalf("After Start: phase=%s frozen=%v", s.Phase(), s.Player().Frozen)
	}

	// Прыжок во время отсчета игнорируется
	if s.Jump() {
		t.Error("Jump accepted during countdown")
	}

	for i := 0; i < 179; i++ {
		s.Tick()
	}
	if s.Phase() != PhaseCountdown {
		t.Fatalf("Countdown ended early at tick %d", s.CurrentTick())
	}
	if s.Score() != 0 {
		t.Errorf("Score changed during countdown: %v", s.Score())
	}

	s.Tick()
	if s.Phase() != PhaseRunning {
		t.Fatalf("Phase after 180 ticks = %s, want running", s.Phase())
	}
	if s.Player().Frozen {
		t.Error("Player still frozen after countdown")
	}
}

func TestSession_ScoreAccrues(t *testing.T) {
	s := newRunningSession(t)
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if math.Abs(s.Score()-1.0) > eps {
		t.Errorf("Score after 10 ticks = %v, want 1.0", s.Score())
	}
	if s.Speed() != s.Tuning().BaseSpeed {
		t.Errorf("Speed changed below first threshold: %v", s.Speed())
	}
}

func TestSession_SpeedUp(t *testing.T) {
	s := newRunningSession(t)
	s.progress.Score = 9.95

	s.Tick()
	want := s.Tuning().BaseSpeed + s.Tuning().SpeedIncrement
	if math.Abs(s.Speed()-want) > eps || math.Abs(s.TrailSpeed()-want) > eps {
		t.Fatalf("Speeds = %v/%v, want %v", s.Speed(), s.TrailSpeed(), want)
	}

	flash := false
	for _, e := range s.Effects() {
		if e.Kind == domain.EffectSpeedUp {
			flash = true
		}
	}
	if !flash {
		t.Error("Speed-up flash effect not started")
	}

	// Следующий тик тот же порог не применяет
	s.Tick()
	if math.Abs(s.Speed()-want) > eps {
		t.Errorf("Speed incremented twice for one threshold: %v", s.Speed())
	}
}

func TestSession_CollisionGrace(t *testing.T) {
	s := newRunningSession(t)
	s.obstacles = append(s.obstacles, asteroidOnPlayer(1))

	s.Tick()
	if s.Phase() != PhaseRunning {
		t.Fatalf("Collision detected within grace, phase=%s", s.Phase())
	}
}

func TestSession_CollisionEndsRun(t *testing.T) {
	s := newRunningSession(t)
	s.progress.Score = 6
	s.obstacles = append(s.obstacles, asteroidOnPlayer(1))

	s.Tick()
	if s.Phase() != PhaseCrashing {
		t.Fatalf("Phase after hit = %s, want crashing", s.Phase())
	}
	if !s.Player().Frozen {
		t.Error("Player should be frozen after collision")
	}
	if s.Score() != 6 {
		t.Errorf("Score accrued on collision tick: %v", s.Score())
	}

	slow := s.Tuning().SlowMotionTicks
	for i := 0; i < slow-1; i++ {
		s.Tick()
	}
	if s.Phase() != PhaseCrashing {
		t.Fatalf("Slow motion ended early, phase=%s", s.Phase())
	}

	s.Tick()
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase after slow motion = %s, want game_over", s.Phase())
	}
	if s.HighScore() != 6 {
		t.Errorf("HighScore = %d, want 6", s.HighScore())
	}
}

func TestSession_FrozenAfterGameOver(t *testing.T) {
	s := newRunningSession(t)
	s.cfg.Tuning.SlowMotionTicks = 0
	s.progress.Score = 6
	s.obstacles = append(s.obstacles, asteroidOnPlayer(1))
	s.Tick()
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase = %s, want game_over", s.Phase())
	}

	score := s.Score()
	pos := s.Player().Position
	obstacleZ := s.Obstacles()[0].Position.Z()

	for i := 0; i < 100; i++ {
		s.Tick()
	}

	if s.Score() != score {
		t.Errorf("Score changed after game over: %v -> %v", score, s.Score())
	}
	if s.Player().Position != pos {
		t.Errorf("Player moved after game over: %v -> %v", pos, s.Player().Position)
	}
	if s.Obstacles()[0].Position.Z() != obstacleZ {
		t.Error("Obstacles moved after game over")
	}
	if s.Jump() {
		t.Error("Jump accepted after game over")
	}
}

func TestSession_Reset(t *testing.T) {
	s := newRunningSession(t)
	s.cfg.Tuning.SlowMotionTicks = 0
	s.progress.Score = 12
	s.progress.Apply()
	s.Jump()
	s.obstacles = append(s.obstacles, asteroidOnPlayer(1))
	s.Tick()
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase = %s, want game_over", s.Phase())
	}

	s.Reset()

	if s.Phase() != PhaseIdle {
		t.Errorf("Phase after reset = %s", s.Phase())
	}
	if s.Score() != 0 || s.Speed() != s.Tuning().BaseSpeed || s.TrailSpeed() != s.Tuning().BaseSpeed {
		t.Errorf("Progress not reset: score=%v speed=%v trail=%v", s.Score(), s.Speed(), s.TrailSpeed())
	}
	if len(s.Obstacles()) != 0 || len(s.Trails()) != 0 || len(s.Collectibles()) != 0 || len(s.Effects()) != 0 {
		t.Error("World not cleared after reset")
	}
	p := s.Player()
	if p.Position != (mgl64.Vec3{0, domain.PlayerStartY, 0}) || p.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Player not at start: pos=%v vel=%v", p.Position, p.Velocity)
	}
	if p.IsJumping || p.DoubleJumpAvailable {
		t.Error("Jump flags not cleared")
	}
	if s.SpawnInterval() != s.Tuning().SpawnInterval {
		t.Errorf("Spawn interval = %v, want %v", s.SpawnInterval(), s.Tuning().SpawnInterval)
	}
	if s.HighScore() != 12 {
		t.Errorf("High score lost on reset: %d", s.HighScore())
	}

	// Restart сразу запускает забег (отсчет выключен)
	s.Restart()
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase after restart = %s, want running", s.Phase())
	}
}

func TestSession_JumpLeavesTrail(t *testing.T) {
	s := newRunningSession(t)

	if !s.Jump() {
		t.Fatal("First jump rejected")
	}
	if !s.Jump() {
		t.Fatal("Double jump rejected")
	}
	if s.Jump() {
		t.Fatal("Third jump accepted")
	}
	if len(s.Trails()) != 2 {
		t.Errorf("Trails = %d, want 2", len(s.Trails()))
	}
}

func TestSession_CollectiblePickup(t *testing.T) {
	s := newRunningSession(t)
	s.collectibles = append(s.collectibles, &domain.Collectible{
		ID:       1,
		Position: mgl64.Vec3{0, domain.PlayerStartY, -0.1},
		Size:     mgl64.Vec3{domain.CollectibleSize, domain.CollectibleSize, domain.CollectibleSize},
	})

	s.Tick()

	if len(s.Collectibles()) != 0 {
		t.Fatalf("Collectible not picked up")
	}
	want := s.Tuning().ScorePerTick + s.Tuning().CollectibleBonus
	if math.Abs(s.Score()-want) > eps {
		t.Errorf("Score = %v, want %v", s.Score(), want)
	}

	burst := false
	for _, e := range s.Effects() {
		if e.Kind == domain.EffectCollect {
			burst = true
		}
	}
	if !burst {
		t.Error("Collect effect not started")
	}
}

func TestSession_StepPanicIsContained(t *testing.T) {
	s := newRunningSession(t)
	// nil в списке препятствий ломает шаг движения
	s.obstacles = append(s.obstacles, nil)

	s.Tick()

	if s.Failures() != 1 {
		t.Errorf("Failures = %d, want 1", s.Failures())
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase after failed step = %s", s.Phase())
	}
	if math.Abs(s.Score()-s.Tuning().ScorePerTick) > eps {
		t.Errorf("Remaining steps skipped, score=%v", s.Score())
	}
}

func TestReplay_Deterministic(t *testing.T) {
	s := NewSession(Config{Seed: 42, Tuning: domain.DefaultTuning()})
	s.Start()

	for i := 1; i <= 1500; i++ {
		switch {
		case i%45 == 0:
			s.Apply(domain.InputJump)
		case i%45 == 5:
			s.Apply(domain.InputJump)
		case i%200 == 0:
			s.Apply(domain.InputMoveLeft)
		case i%200 == 30:
			s.Apply(domain.InputMoveStop)
		}
		if s.Phase() == PhaseGameOver {
			s.Apply(domain.InputReset)
		}
		s.Tick()
	}

	rec := s.Recording()
	r := Replay(rec)

	if r.CurrentTick() != s.CurrentTick() {
		t.Fatalf("Tick = %d, want %d", r.CurrentTick(), s.CurrentTick())
	}
	if r.Phase() != s.Phase() || r.Score() != s.Score() || r.HighScore() != s.HighScore() {
		t.Errorf("Replay diverged: phase %s/%s score %v/%v high %d/%d",
			r.Phase(), s.Phase(), r.Score(), s.Score(), r.HighScore(), s.HighScore())
	}
	if r.Player().Position != s.Player().Position {
		t.Errorf("Player position %v, want %v", r.Player().Position, s.Player().Position)
	}
	if len(r.Obstacles()) != len(s.Obstacles()) {
		t.Fatalf("Obstacles = %d, want %d", len(r.Obstacles()), len(s.Obstacles()))
	}
	for i := range s.Obstacles() {
		if r.Obstacles()[i].Position != s.Obstacles()[i].Position {
			t.Errorf("Obstacle %d at %v, want %v", i, r.Obstacles()[i].Position, s.Obstacles()[i].Position)
		}
	}
	if len(r.Recording().Inputs) != len(rec.Inputs) {
		t.Errorf("Replay recorded %d inputs, want %d", len(r.Recording().Inputs), len(rec.Inputs))
	}
}
