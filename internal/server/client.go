package server

import (
	"errors"
	"time"

	"tapdash-server/internal/network"
	"tapdash-server/internal/relay"
	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client - посредник между WebSocket и сессией релея
type Client struct {
	ID    string
	Conn  *websocket.Conn
	Codec api.Codec
	Send  chan api.Message

	relay *relay.Session
	hub   *network.Broadcaster
	log   *logrus.Entry
}

// NewClient связывает соединение с уже зарегистрированным в хабе каналом send.
func NewClient(id string, conn *websocket.Conn, codec api.Codec, send chan api.Message, session *relay.Session, hub *network.Broadcaster) *Client {
	return &Client{
		ID:    id,
		Conn:  conn,
		Codec: codec,
		Send:  send,
		relay: session,
		hub:   hub,
		log:   logger.Component("ws").WithField("conn", id),
	}
}

// readPump читает кадры клиента и передает их в сессию
func (c *Client) readPump() {
	defer func() {
		if err := c.relay.Disconnect(c.ID); err != nil {
			// сессия уже остановлена, отписываемся сами
			c.hub.Unregister(c.ID)
		}
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read error")
			}
			return
		}

		frame, err := c.Codec.Decode(data)
		if err != nil {
			c.log.WithError(err).Debug("malformed frame")
			c.hub.SendTo(c.ID, api.ErrorMessage(api.ErrCodeBadPayload, err.Error()))
			continue
		}

		if err := c.relay.Submit(c.ID, frame); err != nil {
			if errors.Is(err, relay.ErrClosed) {
				return
			}
			c.log.WithError(err).Warn("submit failed")
		}
	}
}

// writePump кодирует сообщения и отправляет их клиенту + Ping.
// Закрытый канал означает, что сессия отключила клиента: шлем close-кадр.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	frameType := websocket.TextMessage
	if c.Codec.Binary() {
		frameType = websocket.BinaryMessage
	}

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
				if err := c.Conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}

			data, err := c.Codec.Encode(message)
			if err != nil {
				c.log.WithError(err).Error("encode failed")
				continue
			}
			if err := c.Conn.WriteMessage(frameType, data); err != nil {
				c.log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
