package engine

import (
	"math/rand"
	"time"

	"tapdash-server/internal/domain"
	"tapdash-server/internal/systems"
	"tapdash-server/pkg/logger"
	"tapdash-server/pkg/utils"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Phase - фаза игровой сессии
type Phase uint8

const (
	PhaseIdle      Phase = iota // создана, не запущена
	PhaseCountdown              // обратный отсчет, игрок заморожен
	PhaseRunning                // идет забег
	PhaseCrashing               // столкновение, замедление перед game over
	PhaseGameOver               // забег окончен, ждем Restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseCrashing:
		return "crashing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Длительность разлета частиц при сборе бонуса (1 секунда)
const collectBurstTicks = 60

// Session - одна игровая сессия Tap Dash. Владеет игроком, препятствиями и счетом.
// Не потокобезопасна: ее крутит одна горутина.
type Session struct {
	cfg Config
	rng *rand.Rand
	log *logrus.Entry

	createdAt int64
	tick      uint64
	phase     Phase
	countdown int

	player       *domain.Player
	obstacles    []*domain.Obstacle
	trails       []domain.Trail
	collectibles []*domain.Collectible
	nextOrbID    int

	spawner  *systems.Spawner
	progress *systems.Progression
	effects  systems.EffectSet

	crashedInto domain.ObstacleType
	highScore   int
	failures    int
	inputs      []domain.InputRecord
}

// NewSession создает сессию в фазе Idle. Запуск - Start.
func NewSession(cfg Config) *Session {
	rng := utils.NewRand(cfg.Seed)
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		log:       logger.Component("engine").WithField("seed", cfg.Seed),
		createdAt: time.Now().Unix(),
		player:    domain.NewPlayer(),
		spawner:   systems.NewSpawner(cfg.Tuning, rng),
		progress:  systems.NewProgression(cfg.Tuning),
	}
	s.player.Frozen = true
	return s
}

// Start запускает обратный отсчет. Без отсчета (CountdownTicks <= 0) забег начинается сразу.
func (s *Session) Start() {
	if s.phase != PhaseIdle {
		return
	}
	s.phase = PhaseCountdown
	s.countdown = s.cfg.Tuning.CountdownTicks
	s.player.Frozen = true
	if s.countdown <= 0 {
		s.beginRunning()
	}
}

func (s *Session) beginRunning() {
	s.phase = PhaseRunning
	s.player.Frozen = false
	s.spawner.Start()
	s.event("run started", nil)
}

// Tick - один кадр игры.
func (s *Session) Tick() {
	s.tick++

	switch s.phase {
	case PhaseCountdown:
		s.countdown--
		if s.countdown <= 0 {
			s.beginRunning()
		}
	case PhaseRunning:
		s.runTick()
	}

	s.guard("effects", s.updateEffects)
}

func (s *Session) runTick() {
	t := s.cfg.Tuning

	s.guard("player", func() {
		systems.StepPlayer(s.player, t)
	})

	s.guard("obstacles", func() {
		var removed int
		s.obstacles, removed = systems.AdvanceObstacles(s.obstacles, s.progress.ObstacleSpeed, s.player.Position.Z(), t.RemovalThreshold)
		if removed > 0 {
			s.log.WithFields(logrus.Fields{"tick": s.tick, "removed": removed}).Debug("obstacles passed the player")
		}
	})

	s.guard("spawn", func() {
		s.obstacles = append(s.obstacles, s.spawner.Step(s.tick)...)
	})

	s.guard("trails", func() {
		s.trails = systems.AdvanceTrails(s.trails, s.progress.TrailSpeed, s.player.Position.Z(), t.RemovalThreshold)
	})

	// Столкновения проверяются только после короткой форы
	if s.progress.Score > t.CollisionGrace {
		var hit *domain.Obstacle
		s.guard("collision", func() {
			hit = systems.FirstHit(s.player, s.obstacles, t)
		})
		if hit != nil {
			s.crash(hit)
			return
		}
	}

	if n := s.progress.Tick(); n > 0 {
		s.speedUp(n)
	}

	s.guard("collectibles", s.updateCollectibles)
}

func (s *Session) updateCollectibles() {
	t := s.cfg.Tuning

	if s.rng.Float64() < t.CollectibleChance {
		s.nextOrbID++
		s.collectibles = append(s.collectibles, &domain.Collectible{
			ID: s.nextOrbID,
			Position: mgl64.Vec3{
				(s.rng.Float64() - 0.5) * domain.CollectibleSpreadX,
				domain.CollectibleBaseY + s.rng.Float64()*domain.CollectibleRangeY,
				-t.SpawnDistance,
			},
			Size: mgl64.Vec3{domain.CollectibleSize, domain.CollectibleSize, domain.CollectibleSize},
		})
	}

	s.collectibles = systems.AdvanceCollectibles(s.collectibles, s.progress.ObstacleSpeed, s.player.Position.Z(), t.RemovalThreshold)

	var taken []*domain.Collectible
	s.collectibles, taken = systems.Collect(s.player, s.collectibles)
	for _, c := range taken {
		s.effects.Add(domain.EffectCollect, c.Position, s.tick, collectBurstTicks)
		if n := s.progress.Add(t.CollectibleBonus); n > 0 {
			s.speedUp(n)
		}
		s.log.WithFields(logrus.Fields{"tick": s.tick, "orb": c.ID}).Debug("collectible picked up")
	}
}

func (s *Session) speedUp(n int) {
	s.effects.Add(domain.EffectSpeedUp, s.player.Position, s.tick, s.cfg.Tuning.FlashTicks)
	s.event("speed increased", logrus.Fields{
		"steps": n,
		"speed": s.progress.ObstacleSpeed,
	})
}

func (s *Session) crash(o *domain.Obstacle) {
	s.phase = PhaseCrashing
	s.crashedInto = o.Type
	s.player.Frozen = true
	s.spawner.Stop()
	s.effects.Add(domain.EffectSlowMotion, o.Position, s.tick, s.cfg.Tuning.SlowMotionTicks)
	s.event("collision", logrus.Fields{"obstacle": o.Type, "obstacle_id": o.ID})

	if s.cfg.Tuning.SlowMotionTicks <= 0 {
		s.gameOver()
	}
}

// updateEffects снимает просроченные эффекты. Конец замедления завершает забег.
func (s *Session) updateEffects() {
	for _, e := range s.effects.Update(s.tick) {
		if e.Kind == domain.EffectSlowMotion && s.phase == PhaseCrashing {
			s.gameOver()
		}
	}
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.player.Frozen = true
	s.spawner.Stop()
	final := s.progress.Floor()
	if final > s.highScore {
		s.highScore = final
	}
	s.event("game over", logrus.Fields{"high_score": s.highScore, "obstacle": s.crashedInto})
}

// --- ВВОД ---

// Jump - запрос прыжка. Принимается только во время забега.
// Успешный прыжок оставляет след.
func (s *Session) Jump() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.record(domain.InputJump)
	if !systems.TryJump(s.player, s.cfg.Tuning) {
		return false
	}
	s.trails = systems.DropTrail(s.trails, s.player, s.cfg.Tuning.MaxTrails)
	return true
}

// Move задает боковое движение: -1 влево, 0 стоп, 1 вправо.
func (s *Session) Move(dir int) {
	switch {
	case dir < 0:
		dir = -1
		s.record(domain.InputMoveLeft)
	case dir > 0:
		dir = 1
		s.record(domain.InputMoveRight)
	default:
		s.record(domain.InputMoveStop)
	}
	s.player.Direction = dir
}

// Restart - сброс и новый обратный отсчет (кнопка "играть снова").
func (s *Session) Restart() {
	s.record(domain.InputReset)
	s.Reset()
	s.Start()
}

// Apply применяет ввод по его виду. Используется автопилотом и проигрыванием записей.
func (s *Session) Apply(kind domain.InputKind) bool {
	switch kind {
	case domain.InputJump:
		return s.Jump()
	case domain.InputMoveLeft:
		s.Move(-1)
	case domain.InputMoveRight:
		s.Move(1)
	case domain.InputMoveStop:
		s.Move(0)
	case domain.InputReset:
		s.Restart()
	default:
		return false
	}
	return true
}

// Reset возвращает игрока, препятствия, генератор и счет к стартовому состоянию.
// Лучший счет и счетчик тиков сохраняются.
func (s *Session) Reset() {
	s.player.Reset()
	s.player.Frozen = true
	s.obstacles = nil
	s.trails = nil
	s.collectibles = nil
	s.spawner.Reset()
	s.progress.Reset()
	s.effects.Reset()
	s.crashedInto = domain.ObstacleUnknown
	s.phase = PhaseIdle
}

func (s *Session) record(kind domain.InputKind) {
	s.inputs = append(s.inputs, domain.InputRecord{Tick: s.tick, Kind: kind})
}

// --- ЧТЕНИЕ СОСТОЯНИЯ ---

func (s *Session) CurrentTick() uint64 { return s.tick }
func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Score() float64       { return s.progress.Score }
func (s *Session) HighScore() int       { return s.highScore }
func (s *Session) Speed() float64       { return s.progress.ObstacleSpeed }
func (s *Session) TrailSpeed() float64  { return s.progress.TrailSpeed }
func (s *Session) Failures() int        { return s.failures }

func (s *Session) Player() *domain.Player              { return s.player }
func (s *Session) Obstacles() []*domain.Obstacle       { return s.obstacles }
func (s *Session) Collectibles() []*domain.Collectible { return s.collectibles }
func (s *Session) Trails() []domain.Trail              { return s.trails }
func (s *Session) Effects() []domain.Effect            { return s.effects.Snapshot() }
func (s *Session) SpawnInterval() float64              { return s.spawner.Interval() }
func (s *Session) Tuning() domain.Tuning               { return s.cfg.Tuning }

// Recording собирает запись забега на текущий момент.
func (s *Session) Recording() *domain.RunRecording {
	inputs := make([]domain.InputRecord, len(s.inputs))
	copy(inputs, s.inputs)
	return &domain.RunRecording{
		Seed:       s.cfg.Seed,
		Timestamp:  s.createdAt,
		Tuning:     s.cfg.Tuning,
		FinalTick:  s.tick,
		FinalScore: s.progress.Score,
		Inputs:     inputs,
	}
}

// Replay проигрывает запись на новой сессии: Start, затем ввод перед тиками,
// на которых он был сделан. Возвращает сессию в конечном состоянии.
func Replay(rec *domain.RunRecording) *Session {
	s := NewSession(Config{Seed: rec.Seed, Tuning: rec.Tuning})
	s.Start()

	next := 0
	for s.tick < rec.FinalTick {
		for next < len(rec.Inputs) && rec.Inputs[next].Tick <= s.tick {
			s.Apply(rec.Inputs[next].Kind)
			next++
		}
		s.Tick()
	}
	for ; next < len(rec.Inputs); next++ {
		s.Apply(rec.Inputs[next].Kind)
	}
	return s
}
