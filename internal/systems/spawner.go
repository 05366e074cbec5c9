package systems

import (
	"math"
	"math/rand"

	"tapdash-server/internal/domain"

	"github.com/go-gl/mathgl/mgl64"
)

// Spawner создает препятствия по счетчику кадров.
// Интервал начинается с SpawnInterval и после каждого спавна уменьшается
// на SpawnIntervalStep, но не ниже MinSpawnInterval.
type Spawner struct {
	tuning domain.Tuning
	rng    *rand.Rand

	frame    int
	interval float64
	enabled  bool
	nextID   int
	queue    SpawnQueue
}

func NewSpawner(t domain.Tuning, rng *rand.Rand) *Spawner {
	s := &Spawner{tuning: t, rng: rng}
	s.Reset()
	return s
}

// Start включает генерацию (после обратного отсчета).
func (s *Spawner) Start() { s.enabled = true }

// Stop выключает генерацию (game over). Счетчик не сбрасывается.
func (s *Spawner) Stop() { s.enabled = false }

func (s *Spawner) Enabled() bool     { return s.enabled }
func (s *Spawner) Interval() float64 { return s.interval }
func (s *Spawner) Pending() int      { return s.queue.Len() }

// Reset возвращает генератор к старту. Генерация выключена до Start.
func (s *Spawner) Reset() {
	s.frame = 0
	s.interval = s.tuning.SpawnInterval
	s.enabled = false
	s.queue.Clear()
}

// Step - один тик генератора. Возвращает новые препятствия (обычно ноль или одно).
func (s *Spawner) Step(now uint64) []*domain.Obstacle {
	if !s.enabled {
		return nil
	}

	var out []*domain.Obstacle
	for _, sc := range s.queue.PopDue(now) {
		out = append(out, s.Spawn(sc.Type))
	}

	s.frame++
	if float64(s.frame) < s.interval {
		return out
	}

	out = append(out, s.Spawn(s.randomType()))
	s.frame = 0
	s.interval = math.Max(s.tuning.MinSpawnInterval, s.interval-s.tuning.SpawnIntervalStep)

	// Иногда за препятствием идет второе, через BurstDelay тиков
	if s.tuning.BurstChance > 0 && s.rng.Float64() < s.tuning.BurstChance {
		s.queue.Schedule(now+uint64(s.tuning.BurstDelay), s.randomType())
	}
	return out
}

// Spawn создает одно препятствие заданного типа на дистанции появления
// со случайным боковым смещением. Неизвестный тип заменяется первым из каталога.
func (s *Spawner) Spawn(t domain.ObstacleType) *domain.Obstacle {
	spec, ok := domain.SpecFor(t)
	if !ok {
		spec = domain.ObstacleCatalog[0]
	}

	s.nextID++
	x := (s.rng.Float64() - 0.5) * s.tuning.LateralSpread

	return &domain.Obstacle{
		ID:        s.nextID,
		Type:      spec.Type,
		Position:  mgl64.Vec3{x, spec.SpawnHeight, -s.tuning.SpawnDistance},
		Size:      spec.Size,
		MinHeight: spec.MinHeight,
	}
}

func (s *Spawner) randomType() domain.ObstacleType {
	return domain.ObstacleCatalog[s.rng.Intn(len(domain.ObstacleCatalog))].Type
}
