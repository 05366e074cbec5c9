package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"tapdash-server/internal/config"
	"tapdash-server/internal/network"
	"tapdash-server/internal/relay"
	"tapdash-server/internal/version"
	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"
	"tapdash-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Relay *relay.Session
	Hub   *network.Broadcaster

	cfg      config.ServerConfig
	codec    api.Codec
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

func New(cfg config.ServerConfig, session *relay.Session, hub *network.Broadcaster) (*Server, error) {
	codec, err := api.CodecByName(cfg.Codec)
	if err != nil {
		return nil, fmt.Errorf("server codec: %w", err)
	}
	s := &Server{
		Relay: session,
		Hub:   hub,
		cfg:   cfg,
		codec: codec,
		log:   logger.Component("http"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// Handler собирает роуты
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	mux.HandleFunc("/version", s.enableCORS(s.handleVersion))
	mux.HandleFunc("/schema", s.enableCORS(s.handleSchema))

	if s.cfg.Debug {
		debugHandler := NewDebugHandler(s.Relay, s.Hub)
		debugHandler.RegisterRoutes(mux)
		// pprof регистрирует себя в DefaultServeMux
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
	}
	return mux
}

// Run запускает HTTP сервер и останавливает его по отмене контекста
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Tap Dash relay running on :%s (codec %s)", s.cfg.Port, s.codec.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) allowedOrigin(origin string) string {
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	// не браузер
	if origin == "" {
		return true
	}
	return s.allowedOrigin(origin) != ""
}

func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		if allowed := s.allowedOrigin(r.Header.Get("Origin")); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
// Кодек выбирается параметром ?codec=json|msgpack, иначе берется из конфига.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec := s.codec
	if name := r.URL.Query().Get("codec"); name != "" {
		c, err := api.CodecByName(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		codec = c
	}

	// Подписка до ответа 101: клиент не пропустит рассылки, сделанные сразу после рукопожатия
	id := utils.GenerateID()
	send := s.Hub.Register(id)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Hub.Unregister(id)
		s.log.WithError(err).Warn("upgrade failed")
		return
	}

	client := NewClient(id, conn, codec, send, s.Relay, s.Hub)
	client.log.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
		"codec":  codec.Name(),
	}).Info("client connected")

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := api.SchemaJSON()
	if err != nil {
		s.log.WithError(err).Error("schema generation failed")
		http.Error(w, "schema unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.Write(data)
}
