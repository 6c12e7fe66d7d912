package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WSEvent is pushed to connected dashboard clients so open views stay in
// sync without polling.
type WSEvent struct {
	Type string      `json:"type"` // prediction_saved, dataset_refreshed
	Data interface{} `json:"data,omitempty"`
}

// Hub fans WSEvents out to all connected websocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]bool

	broadcast chan WSEvent
	upgrader  websocket.Upgrader
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*wsClient]bool),
		broadcast: make(chan WSEvent, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origin policy is enforced by the CORS layer in front.
				return true
			},
		},
	}
}

// Run dispatches broadcasts until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to marshal ws event", "type", event.Type, "error", err)
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow client: drop it rather than block the hub.
					go h.drop(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for all clients. Never blocks the caller; if the
// queue is full the event is dropped.
func (h *Hub) Broadcast(event WSEvent) {
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("WS broadcast queue full, dropping event", "type", event.Type)
	}
}

// HandleWS upgrades the connection and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WS upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	slog.Info("WS client connected", "total", total)

	go client.writeLoop()
	go h.readLoop(client)
}

func (h *Hub) readLoop(client *wsClient) {
	defer h.drop(client)
	for {
		// Clients never send anything meaningful; the read loop only detects
		// disconnects.
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	_ = client.conn.Close()
	slog.Info("WS client disconnected", "total", total)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		_ = client.conn.Close()
		delete(h.clients, client)
	}
}
