package server

import (
	"net/http"
	"time"

	"github.com/Frostlock/Warrens-II/internal/engine"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 // команда игрока, снимки идут только наружу
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - одно websocket-соединение. Снимки из Hub уходят клиенту,
// команды клиента встают в очередь симуляции.
type Client struct {
	ID       string
	Service  *engine.Service
	Conn     *websocket.Conn
	Snapshot <-chan *api.Snapshot

	log *logrus.Entry
}

func NewClient(svc *engine.Service, conn *websocket.Conn) *Client {
	id := utils.GenerateID()
	c := &Client{
		ID:       id,
		Service:  svc,
		Conn:     conn,
		Snapshot: svc.Hub.Register(id),
		log:      logger.For("ws_client").WithField("client", id),
	}
	c.log.Info("Client connected")
	return c
}

func (c *Client) close(where string) {
	if err := c.Conn.Close(); err != nil {
		c.log.WithError(err).WithField("pump", where).Debug("Close failed")
	}
}

func (c *Client) extendRead() {
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("Failed to set read deadline")
	}
}

func (c *Client) extendWrite() {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.WithError(err).Warn("Failed to set write deadline")
	}
}

// readPump: команды клиента -> Service.Submit. Выход из цикла отписывает клиента.
func (c *Client) readPump() {
	defer func() {
		c.Service.Hub.Unregister(c.ID)
		c.close("read")
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.extendRead()
	c.Conn.SetPongHandler(func(string) error {
		c.extendRead()
		return nil
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}
		c.Service.Submit(cmd)
	}
}

// writePump: снимки и ping. Закрытый канал значит, что Hub отписал клиента.
func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.close("write")
	}()

	for {
		select {
		case snap, ok := <-c.Snapshot:
			c.extendWrite()
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(snap); err != nil {
				c.log.WithError(err).Debug("Snapshot write failed")
				return
			}

		case <-ping.C:
			c.extendWrite()
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("Ping failed")
				return
			}
		}
	}
}
