package systems

import (
	"tapdash-server/internal/domain"

	"github.com/go-gl/mathgl/mgl64"
)

// passed - объект ушел за игрока дальше порога удаления
func passed(z, playerZ, threshold float64) bool {
	return z-playerZ > threshold
}

// AdvanceObstacles двигает препятствия к игроку на speed, держит их не ниже MinHeight
// и удаляет прошедшие. Возвращает оставшиеся и число удаленных.
// Слайс фильтруется на месте.
func AdvanceObstacles(obstacles []*domain.Obstacle, speed, playerZ, threshold float64) ([]*domain.Obstacle, int) {
	kept := obstacles[:0]
	for _, o := range obstacles {
		o.Position[2] += speed
		if o.Position.Y() < o.MinHeight {
			o.Position[1] = o.MinHeight
		}
		if passed(o.Position.Z(), playerZ, threshold) {
			continue
		}
		kept = append(kept, o)
	}

	removed := len(obstacles) - len(kept)
	// не держим указатели на удаленные
	for i := len(kept); i < len(obstacles); i++ {
		obstacles[i] = nil
	}
	return kept, removed
}

// AdvanceCollectibles - то же для бонусов.
func AdvanceCollectibles(items []*domain.Collectible, speed, playerZ, threshold float64) []*domain.Collectible {
	kept := items[:0]
	for _, c := range items {
		c.Position[2] += speed
		if !passed(c.Position.Z(), playerZ, threshold) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(items); i++ {
		items[i] = nil
	}
	return kept
}

// AdvanceTrails двигает следы со своей скоростью.
func AdvanceTrails(trails []domain.Trail, speed, playerZ, threshold float64) []domain.Trail {
	kept := trails[:0]
	for _, tr := range trails {
		tr.Position[2] += speed
		if !passed(tr.Position.Z(), playerZ, threshold) {
			kept = append(kept, tr)
		}
	}
	return kept
}

// DropTrail оставляет отрезок следа позади игрока. Лишние (самые старые) отбрасываются.
func DropTrail(trails []domain.Trail, p *domain.Player, limit int) []domain.Trail {
	trails = append(trails, domain.Trail{
		Position: mgl64.Vec3{p.Position.X(), p.Position.Y(), p.Position.Z() - domain.TrailOffsetZ},
		Size:     mgl64.Vec3{domain.TrailWidth, domain.TrailHeight, domain.TrailDepth},
	})
	if limit > 0 && len(trails) > limit {
		trails = append(trails[:0], trails[len(trails)-limit:]...)
	}
	return trails
}
