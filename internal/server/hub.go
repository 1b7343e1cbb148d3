package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the active live-metrics websocket connections and relays frames
// between them: a drawing client streams, observer clients receive.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	log.Printf("[HUB] connection added: %s", conn.RemoteAddr())
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	log.Printf("[HUB] connection removed: %s", conn.RemoteAddr())
}

// Broadcast relays a frame to every connection except the sender.
func (h *Hub) Broadcast(data []byte, exclude *websocket.Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[HUB] write to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Count returns the number of active connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
