package agent

import (
	"math"

	"tapdash-server/internal/domain"
	"tapdash-server/internal/engine"
	"tapdash-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Autopilot - headless-игрок. Раз в тик смотрит на трассу перед собой
// и решает, прыгать ли и куда смещаться. Ввод идет через Session.Apply,
// так что забег автопилота записывается и проигрывается как обычный.
type Autopilot struct {
	// JumpLead - за сколько тиков до контакта прыгать
	JumpLead float64
	// Horizon - дальше этого числа тиков препятствия не рассматриваются
	Horizon float64
	// Dodge - уходить ли в сторону от препятствий, которые не перепрыгнуть
	Dodge bool

	log *logrus.Entry
}

// Decision - что автопилот хочет сделать на этом тике.
type Decision struct {
	Jump bool
	Move int // -1, 0, 1
}

func NewAutopilot(jumpLead, horizon float64, dodge bool) *Autopilot {
	return &Autopilot{
		JumpLead: jumpLead,
		Horizon:  horizon,
		Dodge:    dodge,
		log:      logger.Component("autopilot"),
	}
}

// View - то, что автопилот видит на тике.
type View struct {
	Running   bool
	Player    *domain.Player
	Obstacles []*domain.Obstacle
	Speed     float64
}

// ViewOf снимает картину с игровой сессии.
func ViewOf(s *engine.Session) View {
	return View{
		Running:   s.Phase() == engine.PhaseRunning,
		Player:    s.Player(),
		Obstacles: s.Obstacles(),
		Speed:     s.Speed(),
	}
}

// threat - препятствие на линии игрока и число тиков до контакта
type threat struct {
	obstacle *domain.Obstacle
	ticks    float64
}

// nearestThreat ищет ближайшее препятствие, которое пересекает полосу игрока по X.
func (a *Autopilot) nearestThreat(v View) (threat, bool) {
	p := v.Player
	speed := v.Speed
	if speed <= 0 {
		return threat{}, false
	}

	var best threat
	found := false
	for _, o := range v.Obstacles {
		if o == nil {
			continue
		}
		// расстояние от передней грани препятствия до задней грани игрока
		gap := p.Position.Z() - p.Size.Z()/2 - (o.Position.Z() + o.Size.Z()/2)
		if gap < 0 {
			continue
		}
		if math.Abs(o.Position.X()-p.Position.X()) >= (o.Size.X()+p.Size.X())/2 {
			continue
		}
		ticks := gap / speed
		if ticks > a.Horizon {
			continue
		}
		if !found || ticks < best.ticks {
			best = threat{obstacle: o, ticks: ticks}
			found = true
		}
	}
	return best, found
}

// Decide оценивает трассу, ничего не меняя.
func (a *Autopilot) Decide(v View) Decision {
	if !v.Running || v.Player == nil {
		return Decision{}
	}

	p := v.Player
	th, ok := a.nearestThreat(v)
	if !ok {
		return Decision{}
	}

	var d Decision
	switch p.State() {
	case domain.Grounded:
		d.Jump = th.ticks <= a.JumpLead
	case domain.Jumping:
		// второй прыжок, когда начали падать, а препятствие еще впереди
		d.Jump = p.Velocity.Y() < 0 && th.ticks <= a.JumpLead
	}

	if a.Dodge {
		if p.Position.X() <= th.obstacle.Position.X() {
			d.Move = -1
		} else {
			d.Move = 1
		}
	}
	return d
}

// Step принимает решение и применяет его к сессии.
// Боковое направление меняется только когда решение отличается от текущего.
func (a *Autopilot) Step(s *engine.Session) Decision {
	d := a.Decide(ViewOf(s))
	p := s.Player()

	if d.Move != p.Direction {
		switch d.Move {
		case -1:
			s.Apply(domain.InputMoveLeft)
		case 1:
			s.Apply(domain.InputMoveRight)
		default:
			s.Apply(domain.InputMoveStop)
		}
	}

	if d.Jump && s.Apply(domain.InputJump) {
		a.log.WithFields(logrus.Fields{
			"tick":  s.CurrentTick(),
			"state": p.State(),
		}).Debug("autopilot jump")
	}
	return d
}
