package api

// Vec3 - позиция в мире игры в том виде, в котором она ходит по сети.
type Vec3 struct {
	X float64 `json:"x" jsonschema:"description=Lateral offset"`
	Y float64 `json:"y" jsonschema:"description=Height above the track"`
	Z float64 `json:"z" jsonschema:"description=Depth along the track"`
}

// SpawnPosition - позиция, которую получает только что вошедший игрок.
var SpawnPosition = Vec3{X: 0, Y: 0.5, Z: 0}

// --- CLIENT -> SERVER ---

// JoinPayload - регистрация игрока в релее.
type JoinPayload struct {
	Username string `json:"username" jsonschema:"title=Username,description=Display name; the server keeps at most 20 characters,minLength=1"`
}

// UpdatePayload - полное состояние игрока. Поля указателями, чтобы отличить
// отсутствующее поле от нулевого значения при валидации.
type UpdatePayload struct {
	Position *Vec3    `json:"position" jsonschema:"title=Position,description=Current player position"`
	Score    *float64 `json:"score" jsonschema:"title=Score,description=Current score; must be finite and non-negative"`
	Active   *bool    `json:"active,omitempty" jsonschema:"title=Active,description=Whether the player is still running; defaults to true"`
}

// --- SERVER -> CLIENT ---

// PlayerView - запись игрока в широковещательном снимке.
type PlayerView struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore" jsonschema:"description=Highest score ever reported by this connection"`
	Position Vec3    `json:"position"`
	Active   bool    `json:"active"`
}

// PlayersPayload - полный снимок карты игроков. Рассылается после каждой мутации.
type PlayersPayload struct {
	Players map[string]PlayerView `json:"players" jsonschema:"description=Connection id to player record"`
}

// ErrorPayload - отказ в обработке входящего сообщения. Состояние не меняется.
type ErrorPayload struct {
	Code    string `json:"code" jsonschema:"enum=bad_payload,enum=not_joined,enum=unsupported"`
	Message string `json:"message"`
}

// Коды ошибок
const (
	ErrCodeBadPayload  = "bad_payload"
	ErrCodeNotJoined   = "not_joined"
	ErrCodeUnsupported = "unsupported"
)

// Message - исходящее сообщение до кодирования. Кодек выбирается на стороне соединения.
type Message struct {
	Kind    MessageKind
	Payload any
}

// PlayersMessage собирает снимок в сообщение.
func PlayersMessage(players map[string]PlayerView) Message {
	if players == nil {
		players = map[string]PlayerView{}
	}
	return Message{Kind: KindPlayers, Payload: PlayersPayload{Players: players}}
}

// ErrorMessage собирает сообщение об ошибке.
func ErrorMessage(code, text string) Message {
	return Message{Kind: KindError, Payload: ErrorPayload{Code: code, Message: text}}
}
