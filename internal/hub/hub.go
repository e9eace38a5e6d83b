// Package hub pushes analytics signals to connected dashboards over
// WebSocket. Clients subscribe for one owner and only see that owner's
// signals.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Signal kinds emitted by the analytics engine.
const (
	KindStreakUpdated      = "streak_updated"
	KindFlagRaised         = "flag_raised"
	KindFlagCleared        = "flag_cleared"
	KindProfileRegenerated = "profile_regenerated"
	KindAnalysisRecorded   = "analysis_recorded"
)

// Signal is one real-time notification about an owner's wellness state.
type Signal struct {
	Kind    string         `json:"kind"`
	OwnerID int64          `json:"owner_id"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// NewSignal builds a Signal for the given kind and owner.
func NewSignal(kind string, ownerID int64, extra map[string]any) Signal {
	return Signal{Kind: kind, OwnerID: ownerID, Extra: extra}
}

// Hub maintains the set of active clients and routes signals to the
// subscribers of the signal's owner.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its send channel. Safe to call
// more than once for the same client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers the signal to every client subscribed to its owner.
func (h *Hub) Broadcast(sig Signal) {
	data, err := json.Marshal(sig)
	if err != nil {
		h.logger.Error("marshal signal", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.ownerID != sig.OwnerID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop signal to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
