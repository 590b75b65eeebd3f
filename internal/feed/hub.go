package feed

import (
	"encoding/json"
	"sync"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"
)

// Hub owns one room per project and fans change-feed events out to the
// websocket clients subscribed to that project.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.ProjectID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.ProjectID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	ClientsConnected.Inc()
	logger.Debug("feed client attached", "project", c.ProjectID, "profile", c.ProfileID)
}

func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.ProjectID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			ClientsConnected.Dec()
		}
		if len(room) == 0 {
			delete(h.rooms, c.ProjectID)
		}
	}
	h.mu.Unlock()
}

// Dispatch delivers one event to every client of the project's room. Slow
// clients get dropped rather than stalling the room; a dropped client falls
// back to its next full reload for resync.
func (h *Hub) Dispatch(projectID string, ev domain.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error("feed event marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	room := h.rooms[projectID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.Send <- data:
			EventsDelivered.WithLabelValues(ev.Table).Inc()
		default:
			logger.Warn("feed client send buffer full, closing", "project", projectID, "profile", c.ProfileID)
			c.CloseSlow()
		}
	}
}
