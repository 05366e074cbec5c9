package relay

import (
	"context"
	"errors"
	"fmt"

	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrServerFull  = errors.New("server is full")
	ErrNotJoined   = errors.New("connection has not joined")
	ErrBadPayload  = errors.New("bad payload")
	ErrUnsupported = errors.New("unsupported message type")
	ErrClosed      = errors.New("relay session is closed")
)

// Значения по умолчанию
const (
	DefaultMaxPlayers = 10
	DefaultNameLimit  = 20
	DefaultInboxSize  = 256
)

// Publisher - то, через что сессия рассылает сообщения. network.Broadcaster подходит.
type Publisher interface {
	SendTo(connID string, msg api.Message) bool
	Broadcast(msg api.Message)
	Unregister(connID string)
}

type Options struct {
	MaxPlayers int
	NameLimit  int
	InboxSize  int
}

func (o Options) withDefaults() Options {
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = DefaultMaxPlayers
	}
	if o.NameLimit <= 0 {
		o.NameLimit = DefaultNameLimit
	}
	if o.InboxSize <= 0 {
		o.InboxSize = DefaultInboxSize
	}
	return o
}

// Session - состояние релея: карта игроков и рассылка.
// Карту трогает только горутина Run, все команды идут через inbox по одной,
// поэтому каждая мутация и ее рассылка завершаются до следующей команды.
type Session struct {
	inbox    chan any
	done     chan struct{}
	players  map[string]*Player
	hub      Publisher
	opts     Options
	handlers map[api.MessageKind]HandlerFunc
	log      *logrus.Entry
}

func NewSession(hub Publisher, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		inbox:   make(chan any, opts.InboxSize),
		done:    make(chan struct{}),
		players: make(map[string]*Player),
		hub:     hub,
		opts:    opts,
		handlers: map[api.MessageKind]HandlerFunc{
			api.KindJoin:   WithPayload[api.JoinPayload](handleJoin),
			api.KindUpdate: WithPayload[api.UpdatePayload](handleUpdate),
		},
		log: logger.Component("relay"),
	}
}

// Run обрабатывает команды до отмены контекста.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	s.log.WithField("max_players", s.opts.MaxPlayers).Info("relay session started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("relay session stopped")
			return
		case cmd := <-s.inbox:
			s.handleCommand(cmd)
		}
	}
}

// Done закрывается, когда Run вернулся.
func (s *Session) Done() <-chan struct{} { return s.done }

// Submit передает кадр от соединения в сессию.
func (s *Session) Submit(connID string, frame api.Frame) error {
	return s.enqueue(inbound{ConnID: connID, Frame: frame})
}

// Disconnect сообщает сессии, что соединение закрыто.
func (s *Session) Disconnect(connID string) error {
	return s.enqueue(leave{ConnID: connID})
}

// Snapshot возвращает копию карты игроков.
func (s *Session) Snapshot(ctx context.Context) (map[string]api.PlayerView, error) {
	reply := make(chan map[string]api.PlayerView, 1)
	if err := s.enqueue(snapshotRequest{Reply: reply}); err != nil {
		return nil, err
	}
	select {
	case players := <-reply:
		return players, nil
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Session) enqueue(cmd any) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.inbox <- cmd:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

func (s *Session) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case inbound:
		s.handleFrame(c.ConnID, c.Frame)
	case leave:
		s.handleLeave(c.ConnID)
	case snapshotRequest:
		c.Reply <- s.views()
	default:
		s.log.Warnf("unknown command %T", cmd)
	}
}

// handleFrame выполняет хендлер и переводит его ошибку в ответ клиенту.
func (s *Session) handleFrame(connID string, frame api.Frame) {
	err := s.dispatch(connID, frame)
	if err == nil {
		return
	}

	entry := s.log.WithFields(logrus.Fields{"conn": connID, "type": frame.Type})
	switch {
	case errors.Is(err, ErrServerFull):
		entry.WithField("players", len(s.players)).Warn("join rejected: server full")
		s.hub.SendTo(connID, api.Message{Kind: api.KindServerFull})
		// Закрытие канала заставит писателя отправить close-кадр после serverFull
		s.hub.Unregister(connID)
	case errors.Is(err, ErrNotJoined):
		entry.Debug("update before join")
		s.hub.SendTo(connID, api.ErrorMessage(api.ErrCodeNotJoined, err.Error()))
	case errors.Is(err, ErrBadPayload):
		entry.WithError(err).Warn("invalid payload")
		s.hub.SendTo(connID, api.ErrorMessage(api.ErrCodeBadPayload, err.Error()))
	case errors.Is(err, ErrUnsupported):
		entry.Debug("unsupported message")
		s.hub.SendTo(connID, api.ErrorMessage(api.ErrCodeUnsupported, err.Error()))
	default:
		entry.WithError(err).Error("handler failed")
	}
}

func (s *Session) dispatch(connID string, frame api.Frame) error {
	handler, ok := s.handlers[frame.Kind]
	if !ok || !frame.Kind.FromClient() {
		return fmt.Errorf("%w: %q", ErrUnsupported, frame.Type)
	}
	return handler(Context{ConnID: connID, Session: s}, frame)
}

func (s *Session) handleLeave(connID string) {
	if _, ok := s.players[connID]; ok {
		delete(s.players, connID)
		s.log.WithField("conn", connID).Info("player left")
	}
	s.hub.Unregister(connID)
	s.broadcast()
}

// broadcast рассылает всю карту игроков всем соединениям.
func (s *Session) broadcast() {
	s.hub.Broadcast(api.PlayersMessage(s.views()))
}

// views - копия карты. Сообщение уходит в чужие горутины, ссылаться на живые записи нельзя.
func (s *Session) views() map[string]api.PlayerView {
	out := make(map[string]api.PlayerView, len(s.players))
	for id, p := range s.players {
		out[id] = p.View()
	}
	return out
}
