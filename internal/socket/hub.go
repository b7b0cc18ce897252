package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks connected WebSocket clients and fans workflow events out
// to all of them.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection keyed by the user's email. A second
// connection for the same user replaces the first.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %s", userID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Broadcast sends a message to every connected client. Write failures
// are logged and skipped; a dead connection is cleaned up on its next
// read.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write to %s failed: %v", userID, err)
		}
	}
}

// RequestEvent implements the workflow engine's notifier: it wraps the
// payload in an event envelope and broadcasts it.
func (h *Hub) RequestEvent(event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("WebSocket event marshal failed: %v", err)
		return
	}
	h.Broadcast(message)
}
