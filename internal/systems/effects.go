package systems

import (
	"tapdash-server/internal/domain"

	"github.com/go-gl/mathgl/mgl64"
)

// EffectSet хранит активные эффекты. Главный цикл вызывает Update раз в тик,
// просроченные записи удаляются там же.
type EffectSet struct {
	items []domain.Effect
}

// Add заводит эффект длительностью duration тиков начиная с now.
func (s *EffectSet) Add(kind domain.EffectKind, origin mgl64.Vec3, now uint64, duration int) domain.Effect {
	if duration < 0 {
		duration = 0
	}
	e := domain.Effect{
		Kind:      kind,
		Origin:    origin,
		StartTick: now,
		ExpiresAt: now + uint64(duration),
	}
	s.items = append(s.items, e)
	return e
}

// Update удаляет просроченные записи и возвращает их.
func (s *EffectSet) Update(now uint64) (expired []domain.Effect) {
	kept := s.items[:0]
	for _, e := range s.items {
		if e.Expired(now) {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept
	return expired
}

// Active - есть ли живой эффект этого вида.
func (s *EffectSet) Active(kind domain.EffectKind) bool {
	for _, e := range s.items {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Snapshot - копия активных эффектов.
func (s *EffectSet) Snapshot() []domain.Effect {
	out := make([]domain.Effect, len(s.items))
	copy(out, s.items)
	return out
}

func (s *EffectSet) Len() int { return len(s.items) }

func (s *EffectSet) Reset() { s.items = s.items[:0] }
