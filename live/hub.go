// Package live pushes score changes to connected spectators over WebSocket,
// so public scoreboards refresh without polling.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event types sent over the feed.
const (
	EventScoreCreated    = "SCORE_CREATED"
	EventScoreUpdated    = "SCORE_UPDATED"
	EventScoreDeleted    = "SCORE_DELETED"
	EventScoresPublished = "SCORES_PUBLISHED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans broadcast events out to every connected client. Clients that
// cannot keep up get skipped, never blocked on; a live scoreboard that
// misses one event catches up on the next.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	broadcast chan []byte
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			remaining := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("live client connected", slog.Int("clients", remaining))

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			remaining := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("live client disconnected", slog.Int("clients", remaining))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop the frame rather than stall the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish serializes an event and queues it for every connected client.
// Safe to call from any goroutine.
func (h *Hub) Publish(eventType string, payload interface{}) {
	message, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal live event", slog.String("type", eventType), slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("live broadcast queue full, dropping event", slog.String("type", eventType))
	}
}
