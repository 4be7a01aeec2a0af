package websocket

import (
	"context"

	"chatsync-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires one upgraded connection into the hub, registers its session
// and blocks on the read pump until the peer goes away.
func ServeWs(hub *Hub, router *Router, deviceService service.IDeviceService, c *websocket.Conn, userID uuid.UUID, description string) {
	sessionID := uuid.New()
	client := &Client{
		Hub:       hub,
		Conn:      c,
		UserID:    userID,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		router:    router,
	}

	if err := deviceService.Register(context.Background(), userID, sessionID, description); err != nil {
		hub.logger.Error("hub", "session registration failed", map[string]interface{}{"error": err.Error()})
		c.Close()
		return
	}

	client.Hub.register <- client

	go client.writePump()
	client.readPump() // blocks in the upgrade handler's goroutine

	if err := deviceService.Unregister(context.Background(), sessionID); err != nil {
		hub.logger.Error("hub", "session deregistration failed", map[string]interface{}{"error": err.Error()})
	}
}
