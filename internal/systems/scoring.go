package systems

import (
	"math"

	"tapdash-server/internal/domain"
)

// Progression ведет счет и скорость трассы.
// Скорость препятствий и следов растет на SpeedIncrement ровно один раз
// за каждый кратный SpeedInterval порог, который пересекает ⌊Score⌋.
type Progression struct {
	tuning domain.Tuning

	Score         float64
	ObstacleSpeed float64
	TrailSpeed    float64
	Increments    int

	nextThreshold int
}

func NewProgression(t domain.Tuning) *Progression {
	p := &Progression{tuning: t}
	p.Reset()
	return p
}

// Reset - счет в ноль, скорости к базовым.
func (p *Progression) Reset() {
	p.Score = 0
	p.ObstacleSpeed = p.tuning.BaseSpeed
	p.TrailSpeed = p.tuning.BaseSpeed
	p.Increments = 0
	p.nextThreshold = p.tuning.SpeedInterval
}

// Tick начисляет очки за тик. Возвращает число приростов скорости.
func (p *Progression) Tick() int {
	return p.Add(p.tuning.ScorePerTick)
}

// Add начисляет delta очков (тик или бонус) и применяет пройденные пороги.
func (p *Progression) Add(delta float64) int {
	p.Score += delta
	return p.Apply()
}

// Apply применяет прирост за пороги, которые уже пройдены и еще не учтены.
// Повторный вызов без роста счета ничего не меняет.
func (p *Progression) Apply() int {
	interval := p.tuning.SpeedInterval
	if interval <= 0 {
		return 0
	}

	applied := 0
	for int(math.Floor(p.Score)) >= p.nextThreshold {
		p.ObstacleSpeed += p.tuning.SpeedIncrement
		p.TrailSpeed += p.tuning.SpeedIncrement
		p.nextThreshold += interval
		p.Increments++
		applied++
	}
	return applied
}

// Floor - счет, который видит игрок.
func (p *Progression) Floor() int {
	return int(math.Floor(p.Score))
}
