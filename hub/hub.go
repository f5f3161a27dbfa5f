// Package hub pushes domain events to staff dashboards over websockets.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns its connection's writes. Broadcast only queues onto send.
type client struct {
	conn *websocket.Conn
	role models.Role
	send chan []byte
}

// Hub holds the connected dashboard clients and the role each signed in
// with. It satisfies events.Publisher.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func New() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) Register(conn *websocket.Conn, role models.Role) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}
	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	utils.InfoLogger.WithField("role", role).Info("dashboard client connected")
	go c.writePump()
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

// remove must be called with the mutex held. Closing send stops the
// client's writer, which closes the connection.
func (h *Hub) remove(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish forwards an event to every client. It never waits on a socket.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	h.Broadcast(Message{Event: string(e.Type), Data: e})
	return nil
}

// Broadcast queues msg for every client. A client whose queue is full is
// too slow to keep up and is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("failed to marshal hub message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.WithField("role", c.role).Warn("dashboard client too slow, dropping")
			h.remove(conn)
		}
	}
}

// Close drops every client; each writer sends a going-away frame first.
func (h *Hub) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		h.remove(conn)
	}
	return nil
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("role", c.role).Warn("dashboard write failed")
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}
