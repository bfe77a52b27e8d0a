package wshub

import (
	"context"
	"sync"

	"github.com/coder/websocket"
)

// Client is a single WebSocket connection attached to one room. A player
// may hold several connections (multiple tabs); presence tracks the
// identity, not the socket.
type Client struct {
	ConnID   string
	Identity string
	Name     string
	Conn     *websocket.Conn
	Send     chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection until the channel closes or the context ends.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks a room's WebSocket connections and how many each identity
// holds, so a disconnect only counts as leaving when the last connection
// for that identity goes away.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	conns   map[string]int // identity -> open connection count
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		conns:   make(map[string]int),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ConnID] = c
	h.conns[c.Identity]++
}

// Unregister removes a client and closes its Send channel. Reports whether
// this was the identity's last connection.
func (h *Hub) Unregister(connID string) (identity string, last bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return "", false
	}
	close(c.Send)
	delete(h.clients, connID)
	h.conns[c.Identity]--
	if h.conns[c.Identity] <= 0 {
		delete(h.conns, c.Identity)
		return c.Identity, true
	}
	return c.Identity, false
}

// Connected reports whether the identity holds at least one connection.
func (h *Hub) Connected(identity string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns[identity] > 0
}

// ClientCount returns the number of open connections in the room.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
