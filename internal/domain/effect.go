package domain

import "github.com/go-gl/mathgl/mgl64"

// EffectKind - вид кратковременного эффекта
type EffectKind uint8

const (
	EffectSpeedUp    EffectKind = iota + 1 // вспышка при росте скорости
	EffectSlowMotion                       // замедление перед game over
	EffectCollect                          // разлет частиц при сборе бонуса
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpeedUp:
		return "speed_up"
	case EffectSlowMotion:
		return "slow_motion"
	case EffectCollect:
		return "collect"
	default:
		return "unknown"
	}
}

// Effect - запись эффекта с явным сроком жизни.
// Обновляется главным циклом раз в тик и удаляется по истечении.
type Effect struct {
	Kind      EffectKind
	Origin    mgl64.Vec3
	StartTick uint64
	ExpiresAt uint64
}

// Expired - срок вышел к тику now.
func (e Effect) Expired(now uint64) bool {
	return now >= e.ExpiresAt
}

// Progress - доля прожитого времени в [0, 1].
func (e Effect) Progress(now uint64) float64 {
	if e.ExpiresAt <= e.StartTick || now >= e.ExpiresAt {
		return 1
	}
	if now <= e.StartTick {
		return 0
	}
	return float64(now-e.StartTick) / float64(e.ExpiresAt-e.StartTick)
}
