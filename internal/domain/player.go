package domain

import "github.com/go-gl/mathgl/mgl64"

// JumpState - состояние автомата прыжка
type JumpState uint8

const (
	Grounded JumpState = iota
	Jumping
	DoubleJumpUsed
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case DoubleJumpUsed:
		return "double_jump_used"
	default:
		return "unknown"
	}
}

// Player - игрок на стороне игрового цикла. Меняется один раз за тик.
type Player struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Size     mgl64.Vec3

	IsJumping           bool
	DoubleJumpAvailable bool

	// Frozen - игрок заморожен (обратный отсчет, game over)
	Frozen bool
	// Direction - боковое движение: -1 влево, 0 на месте, 1 вправо
	Direction int
}

// NewPlayer создает игрока в точке старта.
func NewPlayer() *Player {
	p := &Player{Size: mgl64.Vec3{PlayerSize, PlayerSize, PlayerSize}}
	p.Reset()
	return p
}

// Reset возвращает позицию и скорость к значениям старта.
func (p *Player) Reset() {
	p.Position = mgl64.Vec3{0, PlayerStartY, 0}
	p.Velocity = mgl64.Vec3{}
	p.IsJumping = false
	p.DoubleJumpAvailable = false
	p.Direction = 0
}

// GroundLevel - высота центра игрока, стоящего на земле.
func (p *Player) GroundLevel() float64 {
	return p.Size.Y()
}

// State вычисляет состояние автомата прыжка из флагов.
func (p *Player) State() JumpState {
	switch {
	case !p.IsJumping:
		return Grounded
	case p.DoubleJumpAvailable:
		return Jumping
	default:
		return DoubleJumpUsed
	}
}

// Box - полная коробка игрока.
func (p *Player) Box() Box {
	return Box{Center: p.Position, Size: p.Size}
}
