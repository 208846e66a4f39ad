// events/hub.go
package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is pushed to HR dashboards when something in their tenant changes.
type Event struct {
	Type       string      `json:"type"`
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId,omitempty"`
	Actor      string      `json:"actor,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to websocket clients, grouped by HR email.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]bool)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and subscribes it to hrEmail's events.
// Callers must have authenticated the HR before handing off here.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, hrEmail string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.clients[hrEmail] == nil {
		h.clients[hrEmail] = make(map[*client]bool)
	}
	h.clients[hrEmail][c] = true
	h.mu.Unlock()

	go h.writePump(hrEmail, c)
	go h.readPump(hrEmail, c)
}

// Broadcast sends an event to every client subscribed to hrEmail. Slow
// clients are dropped rather than blocking the sender.
func (h *Hub) Broadcast(hrEmail string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[hrEmail]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal event: %v", err)
		return
	}

	for c := range clients {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(clients, c)
		}
	}
}

func (h *Hub) writePump(hrEmail string, c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) readPump(hrEmail string, c *client) {
	defer h.remove(hrEmail, c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(hrEmail string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[hrEmail]; ok {
		if _, present := clients[c]; present {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.clients, hrEmail)
		}
	}
	c.conn.Close()
}
