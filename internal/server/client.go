package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wjkennedy/jira-quake3/internal/network"
	"github.com/wjkennedy/jira-quake3/pkg/api"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Форматы исходящих кадров
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и запущенной игрой
type Client struct {
	ID     uuid.UUID
	Game   Game
	Hub    *network.Broadcaster
	Conn   *websocket.Conn
	Send   chan api.ServerMessage
	Format string

	log *logrus.Entry
}

func NewClient(game Game, hub *network.Broadcaster, conn *websocket.Conn, format string) *Client {
	if format != FormatMsgpack {
		format = FormatJSON
	}
	id := uuid.New()
	return &Client{
		ID:     id,
		Game:   game,
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan api.ServerMessage, 64),
		Format: format,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"session":   id.String(),
		}),
	}
}

// Serve подписывает клиента на снимки и запускает пампы
func (c *Client) Serve() {
	// 1. Приветствие и текущий снимок
	snap := c.Game.Latest()
	c.Send <- api.ServerMessage{Type: api.MessageWelcome, SessionID: c.ID.String(), Snapshot: &snap}

	// 2. Подписка на обновления. Канал закрывается в Unregister (readPump).
	updates := c.Hub.Register(c.ID)
	go func() {
		for s := range updates {
			s := s
			select {
			case c.Send <- api.ServerMessage{Type: api.MessageSnapshot, Snapshot: &s}:
			default:
				// Клиент не успевает: пропускаем кадр
			}
		}
		close(c.Send)
	}()

	c.log.WithField("format", c.Format).Info("Client connected")

	go c.writePump()
	go c.readPump()
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
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
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		if err := Dispatch(c.Game, cmd); err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Debug("Command rejected")
			select {
			case c.Send <- api.ServerMessage{Type: api.MessageError, Error: err.Error()}:
			default:
			}
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.write(message); err != nil {
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

func (c *Client) write(msg api.ServerMessage) error {
	if c.Format == FormatMsgpack {
		data, err := msgpack.Marshal(&msg)
		if err != nil {
			return err
		}
		return c.Conn.WriteMessage(websocket.BinaryMessage, data)
	}
	return c.Conn.WriteJSON(msg)
}
