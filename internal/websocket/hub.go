package websocket

import (
	"sync"

	"chatsync-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub owns every live connection. Clients are indexed twice: by user for
// directed per-user delivery (all devices) and by session for frames aimed at
// exactly one connection.
type Hub struct {
	clients  map[uuid.UUID][]*Client // UserID -> connections (multi-device)
	sessions map[uuid.UUID]*Client   // SessionID -> connection

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		sessions:   make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.sessions[client.SessionID] = client
			h.mu.Unlock()
			h.logger.Info("hub", "client registered", map[string]interface{}{
				"user_id":    client.UserID,
				"session_id": client.SessionID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			if h.sessions[client.SessionID] == client {
				delete(h.sessions, client.SessionID)
			}
			h.mu.Unlock()
			h.logger.Info("hub", "client unregistered", map[string]interface{}{
				"user_id":    client.UserID,
				"session_id": client.SessionID,
			})
		}
	}
}

// Broadcast sends the payload to every connected session. A session with a
// full send buffer is skipped rather than blocking the fan-out.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				h.logger.Warn("hub", "send buffer full, frame dropped", map[string]interface{}{
					"session_id": client.SessionID,
				})
			}
		}
	}
}

// SendToUser sends the payload to every session of one user.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("hub", "send buffer full, frame dropped", map[string]interface{}{
				"session_id": client.SessionID,
			})
		}
	}
}

// SendToSession sends the payload to exactly one session, if still connected.
func (h *Hub) SendToSession(sessionID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
		h.logger.Warn("hub", "send buffer full, frame dropped", map[string]interface{}{
			"session_id": client.SessionID,
		})
	}
}

// CloseSession tears down one connection server-side (force logout).
func (h *Hub) CloseSession(sessionID uuid.UUID) {
	h.mu.RLock()
	client, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if ok {
		client.Conn.Close()
	}
}
