package handler

import (
	"chatsync-be/internal/pkg/serverutils"
	"chatsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMentionHandler interface {
	RegisterRoutes(r fiber.Router)
	Unread(ctx *fiber.Ctx) error
}

type mentionHandler struct {
	mentionService service.IMentionService
}

func NewMentionHandler(mentionService service.IMentionService) IMentionHandler {
	return &mentionHandler{mentionService: mentionService}
}

func (h *mentionHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/mentions")
	g.Use(serverutils.JwtMiddleware)
	g.Get("/unread", h.Unread)
}

func (h *mentionHandler) Unread(ctx *fiber.Ctx) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	res, err := h.mentionService.Unread(ctx.Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unread mentions", res))
}
