package systems

import (
	"tapdash-server/internal/domain"
	"tapdash-server/pkg/logger"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// TryJump применяет запрос прыжка к автомату игрока.
//
//	Grounded -> Jumping:       vy = JumpForce, двойной прыжок становится доступен
//	Jumping  -> DoubleJumpUsed: vy = JumpForce * DoubleJumpFactor, флаг тратится
//	DoubleJumpUsed:             запрос отклоняется до приземления
//
// Возвращает true, если прыжок состоялся.
func TryJump(p *domain.Player, t domain.Tuning) bool {
	if p.Frozen {
		return false
	}

	before := p.State()
	switch before {
	case domain.Grounded:
		p.Velocity[1] = t.JumpForce
		p.IsJumping = true
		p.DoubleJumpAvailable = true
	case domain.Jumping:
		p.Velocity[1] = t.JumpForce * t.DoubleJumpFactor
		p.DoubleJumpAvailable = false
	default:
		return false
	}

	logger.Component("physics_system").WithFields(logrus.Fields{
		"from": before,
		"to":   p.State(),
		"vy":   p.Velocity.Y(),
	}).Debug("jump accepted")
	return true
}

// StepPlayer продвигает игрока на один тик: гравитация, приземление, боковое движение.
// Замороженный игрок не двигается.
func StepPlayer(p *domain.Player, t domain.Tuning) {
	if p.Frozen {
		return
	}

	p.Velocity[1] -= t.Gravity
	p.Position[1] += p.Velocity[1]

	// Приземление: прижимаем к земле и сбрасываем автомат
	if ground := p.GroundLevel(); p.Position.Y() <= ground {
		p.Position[1] = ground
		p.Velocity[1] = 0
		p.IsJumping = false
		p.DoubleJumpAvailable = false
	}

	if p.Direction != 0 {
		x := p.Position.X() + float64(p.Direction)*t.LateralSpeed
		p.Position[0] = mgl64.Clamp(x, -t.LateralLimit, t.LateralLimit)
	}
}
