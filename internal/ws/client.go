package ws

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	ownerID uuid.UUID
	send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, ownerID uuid.UUID) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		ownerID: ownerID,
		send:    make(chan []byte, 256),
	}
}

// ReadPump drains the connection until it errors, which is how client
// disconnects are detected. Inbound payloads are discarded; the socket
// is push-only.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
