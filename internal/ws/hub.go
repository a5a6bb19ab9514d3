package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mathduel/mathduel/internal/model"
)

// Envelope is the frame exchanged on the duel channel, both directions
type Envelope struct {
	Event model.EventType `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub maps players to their live connections and implements the
// orchestrator's Notifier. Delivery is non-blocking: a client whose send
// buffer is full has the frame dropped rather than stalling the caller.
type Hub struct {
	clients map[model.PlayerID]*Client
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.PlayerID]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Notify marshals an event frame and queues it for one player. Frames for
// players with no live connection are dropped; the game layer does not
// track transport liveness.
func (h *Hub) Notify(playerID model.PlayerID, event model.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal event payload",
			slog.String("event", string(event)),
			slog.String("error", err.Error()),
		)
		return
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal event frame",
			slog.String("event", string(event)),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	client, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		h.logger.Warn("event for player with no connection",
			slog.String("player_id", string(playerID)),
			slog.String("event", string(event)),
		)
		return
	}

	select {
	case client.send <- frame:
	default:
		h.logger.Warn("event dropped - client buffer full",
			slog.String("player_id", string(playerID)),
			slog.String("event", string(event)),
		)
	}
}

// register binds a client to its player. A second connection for the same
// player replaces the first; the old connection is closed.
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	old, exists := h.clients[client.playerID]
	h.clients[client.playerID] = client
	h.mu.Unlock()

	if exists {
		old.close()
		h.logger.Info("replaced existing connection",
			slog.String("player_id", string(client.playerID)))
	}
}

// unregister removes a client's binding. A stale unregister (the player
// has already reconnected with a newer client) leaves the new binding
// untouched.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[client.playerID]; ok && current == client {
		delete(h.clients, client.playerID)
		client.close()
	}
}

// ClientCount returns the number of bound connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close tears down every connection, for server shutdown
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[model.PlayerID]*Client)
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
	h.logger.Info("ws hub closed", slog.Int("disconnected_clients", len(clients)))
}
