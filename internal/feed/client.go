package feed

import (
	"sync"
	"time"

	"artistcollab/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client is one websocket subscriber to a project's change feed. Delivery
// is one-way: the socket exists to push events, inbound frames are drained
// only to service pongs and detect disconnect.
type Client struct {
	ProjectID string
	ProfileID string
	Conn      *websocket.Conn
	Send      chan []byte

	hub       *Hub
	closeOnce sync.Once
}

func NewClient(projectID, profileID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ProjectID: projectID,
		ProfileID: profileID,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		hub:       hub,
	}
}

// Run attaches the client to its room and blocks until the peer goes away.
func (c *Client) Run() {
	c.hub.Attach(c)
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer c.close()

	c.Conn.SetReadLimit(1024)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("feed write failed", "profile", c.ProfileID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// CloseSlow tears the client down from the hub side.
func (c *Client) CloseSlow() { c.close() }

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.hub.Detach(c)
		close(c.Send)
		_ = c.Conn.Close()
	})
}
