package systems

import (
	"math"

	"tapdash-server/internal/domain"
)

// Intersects - строгое пересечение двух AABB по всем трем осям.
// Касание гранями пересечением не считается.
func Intersects(a, b domain.Box) bool {
	d := a.Center.Sub(b.Center)
	ha, hb := a.Half(), b.Half()
	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) >= ha[axis]+hb[axis] {
			return false
		}
	}
	return true
}

// FirstHit ищет первое препятствие, задетое игроком.
// Коробка игрока уменьшена до HitboxScale, коробки препятствий полные.
func FirstHit(p *domain.Player, obstacles []*domain.Obstacle, t domain.Tuning) *domain.Obstacle {
	pb := p.Box().Scaled(t.HitboxScale)
	for _, o := range obstacles {
		if Intersects(pb, o.Box()) {
			return o
		}
	}
	return nil
}

// Collect убирает бонусы, которых касается игрок (полная коробка игрока),
// и возвращает оставшиеся и собранные.
func Collect(p *domain.Player, items []*domain.Collectible) (kept, taken []*domain.Collectible) {
	pb := p.Box()
	kept = items[:0]
	for _, c := range items {
		if Intersects(pb, c.Box()) {
			taken = append(taken, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept, taken
}
