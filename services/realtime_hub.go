package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

// Send writes one frame to the socket. The websocket package allows only
// one concurrent writer per connection, so every write goes through here.
func (c *WSClient) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub pushes log updates to a user's open sockets so a second
// device (or the calendar view) refreshes without polling.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

// RealtimeEvent is the wire frame. Type is "log.updated"; Date names the
// day whose summary changed.
type RealtimeEvent struct {
	Type    string      `json:"type"`
	Date    string      `json:"date"`
	Payload interface{} `json:"payload,omitempty"`
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// LogUpdated tells every socket of userID that date's log changed.
// Payload is typically the recomputed day summary; send errors just drop
// the frame, the client resyncs on reconnect.
func (h *RealtimeHub) LogUpdated(userID uint, date string, payload interface{}) {
	msg, _ := json.Marshal(RealtimeEvent{Type: "log.updated", Date: date, Payload: payload})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Send(websocket.TextMessage, msg)
	}
}
