package handler

import (
	"chatsync-be/internal/pkg/serverutils"
	"chatsync-be/internal/service"
	ws "chatsync-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IWsHandler interface {
	RegisterRoutes(app *fiber.App)
}

type wsHandler struct {
	hub           *ws.Hub
	router        *ws.Router
	deviceService service.IDeviceService
}

func NewWsHandler(hub *ws.Hub, router *ws.Router, deviceService service.IDeviceService) IWsHandler {
	return &wsHandler{hub: hub, router: router, deviceService: deviceService}
}

func (h *wsHandler) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", serverutils.JwtMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		// Locals set before the upgrade survive into the websocket handler.
		c.Locals("device_description", c.Get("User-Agent"))
		return c.Next()
	})

	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		raw, ok := c.Locals("user_id").(string)
		if !ok {
			c.Close()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.Close()
			return
		}
		description, _ := c.Locals("device_description").(string)

		ws.ServeWs(h.hub, h.router, h.deviceService, c, userID, description)
	}))
}
