package domain

// InputKind - ввод игрока, который попадает в запись забега
type InputKind uint8

const (
	InputUnknown InputKind = iota
	InputJump
	InputMoveLeft
	InputMoveRight
	InputMoveStop
	InputReset
)

func (k InputKind) String() string {
	switch k {
	case InputJump:
		return "JUMP"
	case InputMoveLeft:
		return "LEFT"
	case InputMoveRight:
		return "RIGHT"
	case InputMoveStop:
		return "STOP"
	case InputReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// InputRecord - один ввод, примененный перед тиком Tick.
type InputRecord struct {
	Tick uint64    `json:"tick"`
	Kind InputKind `json:"kind"`
}

// RunRecording - полная запись забега. Зерно и настройки + ввод дают тот же результат.
type RunRecording struct {
	Seed       int64         `json:"seed"`
	Timestamp  int64         `json:"timestamp"`
	Tuning     Tuning        `json:"tuning"`
	FinalTick  uint64        `json:"finalTick"`
	FinalScore float64       `json:"finalScore"`
	Inputs     []InputRecord `json:"inputs"`
}
