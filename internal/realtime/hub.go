// Package realtime is an unauthenticated websocket relay: every text frame a
// peer sends is forwarded to all other connected peers.
package realtime

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/redmonkez12/friend-app/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected peers and relays their messages
type Hub struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]*client
	closed   bool
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewHub accepts upgrades from allowedOrigins, or from clients that send no
// Origin header.
func NewHub(logger *logging.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeHTTP upgrades the connection and relays until the peer disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.logger.Info("websocket client connected", "client_id", c.id.String())

	go c.writePump()
	h.readPump(c)
}

// Count returns the number of connected peers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every peer and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c.id] = c
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// broadcast queues msg for every peer except the sender. Peers whose buffer
// is full miss the message.
func (h *Hub) broadcast(from uuid.UUID, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		if id == from {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping message for slow websocket client", "client_id", id.String())
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		h.logger.Info("websocket client disconnected", "client_id", c.id.String())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		msgType, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.TextMessage {
			h.broadcast(c.id, msg)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
