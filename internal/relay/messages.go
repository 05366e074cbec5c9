package relay

import "tapdash-server/pkg/api"

// Команды, которые соединения кладут в Inbox сессии.

// inbound - разобранный кадр от клиента
type inbound struct {
	ConnID string
	Frame  api.Frame
}

// leave - соединение закрылось
type leave struct {
	ConnID string
}

// snapshotRequest - запрос копии карты игроков (debug-эндпоинт, тесты)
type snapshotRequest struct {
	Reply chan<- map[string]api.PlayerView
}
