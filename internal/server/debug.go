package server

import (
	"encoding/json"
	"net/http"

	"tapdash-server/internal/network"
	"tapdash-server/internal/relay"
)

// DebugHandler предоставляет доступ к внутреннему состоянию релея
type DebugHandler struct {
	Relay *relay.Session
	Hub   *network.Broadcaster
}

func NewDebugHandler(session *relay.Session, hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Relay: session, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/players", h.handlePlayers)
}

// /debug/players - карта игроков и число открытых соединений
func (h *DebugHandler) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Relay.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{
		"players":     players,
		"connections": h.Hub.SubscriberCount(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (локальные debug-страницы)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("{}"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
