package runner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"tapdash-server/internal/relay"
	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const dialTimeout = 5 * time.Second

// RelayClient - подключение headless-игрока к релею. Пишет только горутина
// раннера, читает собственная горутина клиента.
type RelayClient struct {
	conn  *websocket.Conn
	codec api.Codec
	log   *logrus.Entry

	mu      sync.Mutex
	players map[string]api.PlayerView
	full    bool

	done chan struct{}
}

// DialRelay подключается к релею и отправляет join.
func DialRelay(ctx context.Context, rawURL, username string, codec api.Codec) (*RelayClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("relay url: %w", err)
	}
	q := u.Query()
	q.Set("codec", codec.Name())
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	c := &RelayClient{
		conn:  conn,
		codec: codec,
		log:   logger.Component("relay_client").WithField("url", u.Host),
		done:  make(chan struct{}),
	}
	go c.readLoop()

	if err := c.send(api.Message{Kind: api.KindJoin, Payload: api.JoinPayload{Username: username}}); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Update отправляет состояние игрока.
func (c *RelayClient) Update(pos api.Vec3, score float64, active bool) error {
	select {
	case <-c.done:
		if c.Full() {
			return relay.ErrServerFull
		}
		return errors.New("relay connection closed")
	default:
	}
	return c.send(api.Message{Kind: api.KindUpdate, Payload: api.UpdatePayload{
		Position: &pos,
		Score:    &score,
		Active:   &active,
	}})
}

func (c *RelayClient) send(msg api.Message) error {
	data, err := c.codec.Encode(msg)
	if err != nil {
		return err
	}
	frameType := websocket.TextMessage
	if c.codec.Binary() {
		frameType = websocket.BinaryMessage
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(dialTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(frameType, data)
}

func (c *RelayClient) readLoop() {
	defer close(c.done)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.WithError(err).Warn("relay read failed")
			}
			return
		}
		frame, err := c.codec.Decode(data)
		if err != nil {
			c.log.WithError(err).Warn("bad frame from relay")
			continue
		}

		switch frame.Kind {
		case api.KindPlayers:
			payload, err := api.DecodePayload[api.PlayersPayload](frame)
			if err != nil {
				c.log.WithError(err).Warn("bad players payload")
				continue
			}
			c.mu.Lock()
			c.players = payload.Players
			c.mu.Unlock()
		case api.KindServerFull:
			c.mu.Lock()
			c.full = true
			c.mu.Unlock()
			c.log.Warn("relay is full")
		case api.KindError:
			if e, err := api.DecodePayload[api.ErrorPayload](frame); err == nil {
				c.log.WithFields(logrus.Fields{"code": e.Code}).Warn(e.Message)
			}
		}
	}
}

// Players - последний полученный снимок.
func (c *RelayClient) Players() map[string]api.PlayerView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]api.PlayerView, len(c.players))
	for id, p := range c.players {
		out[id] = p
	}
	return out
}

// Full - релей отказал в join.
func (c *RelayClient) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.full
}

// Close закрывает соединение и ждет завершения чтения.
func (c *RelayClient) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	return c.conn.Close()
}
