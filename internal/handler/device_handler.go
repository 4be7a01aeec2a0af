package handler

import (
	"chatsync-be/internal/pkg/serverutils"
	"chatsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDeviceHandler interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Revoke(ctx *fiber.Ctx) error
}

type deviceHandler struct {
	deviceService service.IDeviceService
}

func NewDeviceHandler(deviceService service.IDeviceService) IDeviceHandler {
	return &deviceHandler{deviceService: deviceService}
}

func (h *deviceHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/devices")
	g.Use(serverutils.JwtMiddleware)
	g.Get("", h.List)
	g.Delete("/:sessionId", h.Revoke)
}

func (h *deviceHandler) List(ctx *fiber.Ctx) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	// REST callers carry no session of their own.
	res, err := h.deviceService.List(ctx.Context(), userID, uuid.Nil)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get devices", res))
}

func (h *deviceHandler) Revoke(ctx *fiber.Ctx) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := h.deviceService.Revoke(ctx.Context(), userID, sessionID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session revoked", nil))
}
