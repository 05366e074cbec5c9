package relay

import (
	"fmt"

	"tapdash-server/pkg/api"
)

// Context передает хендлеру соединение и сессию.
// Хендлер вызывается только из горутины сессии, поэтому может менять карту игроков.
type Context struct {
	ConnID  string
	Session *Session
}

// HandlerFunc - контракт для любого входящего сообщения (join, update).
type HandlerFunc func(ctx Context, frame api.Frame) error

// TypedHandlerFunc - "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) error

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя распаковку и валидацию: до хендлера доходят только корректные данные.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, frame api.Frame) error {
		payload, err := api.DecodePayload[T](frame)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadPayload, err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrBadPayload, err)
			}
		}

		return handler(ctx, payload)
	}
}

// handleJoin регистрирует игрока. Повторный join того же соединения
// заводит запись заново и места не занимает.
func handleJoin(ctx Context, p api.JoinPayload) error {
	s := ctx.Session
	if _, exists := s.players[ctx.ConnID]; !exists && len(s.players) >= s.opts.MaxPlayers {
		return ErrServerFull
	}

	player := newPlayer(ctx.ConnID, p.Username, s.opts.NameLimit)
	s.players[ctx.ConnID] = player
	s.log.WithField("conn", ctx.ConnID).WithField("username", player.Username).Info("player joined")
	s.broadcast()
	return nil
}

// handleUpdate перезаписывает состояние игрока (last write wins).
func handleUpdate(ctx Context, p api.UpdatePayload) error {
	s := ctx.Session
	player, ok := s.players[ctx.ConnID]
	if !ok {
		return ErrNotJoined
	}

	player.apply(p)
	s.broadcast()
	return nil
}
