package relay

import (
	"strings"

	"tapdash-server/pkg/api"
)

// Player - запись игрока в релее. Ключ - ID соединения.
type Player struct {
	ID       string
	Username string
	Score    float64
	MaxScore float64
	Position api.Vec3
	Active   bool
}

func newPlayer(connID, username string, nameLimit int) *Player {
	return &Player{
		ID:       connID,
		Username: truncateName(strings.TrimSpace(username), nameLimit),
		Position: api.SpawnPosition,
		Active:   true,
	}
}

// apply перезаписывает состояние целиком. Рекорд только растет.
func (p *Player) apply(u api.UpdatePayload) {
	p.Position = *u.Position
	p.Score = *u.Score
	p.Active = true
	if u.Active != nil {
		p.Active = *u.Active
	}
	if p.Score > p.MaxScore {
		p.MaxScore = p.Score
	}
}

func (p *Player) View() api.PlayerView {
	return api.PlayerView{
		ID:       p.ID,
		Username: p.Username,
		Score:    p.Score,
		MaxScore: p.MaxScore,
		Position: p.Position,
		Active:   p.Active,
	}
}

// truncateName режет имя до limit символов (не байт)
func truncateName(name string, limit int) string {
	if limit <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit])
}
