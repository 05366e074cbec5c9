package api

import "strings"

// MessageKind - внутренний числовой идентификатор типа сообщения
type MessageKind uint8

const (
	KindUnknown MessageKind = iota
	KindJoin
	KindUpdate
	KindPlayers
	KindServerFull
	KindError
)

// Маппинг для конвертации wire -> MessageKind (ключи в нижнем регистре)
var kindByName = map[string]MessageKind{
	"join":       KindJoin,
	"update":     KindUpdate,
	"players":    KindPlayers,
	"serverfull": KindServerFull,
	"error":      KindError,
}

// Обратный маппинг, в том виде, в котором тип уходит в сеть
var nameByKind = map[MessageKind]string{
	KindJoin:       "join",
	KindUpdate:     "update",
	KindPlayers:    "players",
	KindServerFull: "serverFull",
	KindError:      "error",
}

// ParseKind конвертирует поле "type" конверта в MessageKind (без учета регистра)
func ParseKind(s string) MessageKind {
	if val, ok := kindByName[strings.ToLower(s)]; ok {
		return val
	}
	return KindUnknown
}

// String реализует fmt.Stringer
func (k MessageKind) String() string {
	if val, ok := nameByKind[k]; ok {
		return val
	}
	return "unknown"
}

// FromClient сообщает, может ли клиент присылать сообщения этого типа.
func (k MessageKind) FromClient() bool {
	return k == KindJoin || k == KindUpdate
}
