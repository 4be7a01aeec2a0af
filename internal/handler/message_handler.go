package handler

import (
	"time"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/serverutils"
	"chatsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageHandler interface {
	RegisterRoutes(r fiber.Router)
	Feed(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	ContextWindow(ctx *fiber.Ctx) error
	Thread(ctx *fiber.Ctx) error
	Attachments(ctx *fiber.Ctx) error
	EditHistory(ctx *fiber.Ctx) error
	Pinned(ctx *fiber.Ctx) error
}

type messageHandler struct {
	queryService  service.IQueryService
	threadService service.IThreadService
	pinService    service.IPinService
}

func NewMessageHandler(queryService service.IQueryService, threadService service.IThreadService, pinService service.IPinService) IMessageHandler {
	return &messageHandler{
		queryService:  queryService,
		threadService: threadService,
		pinService:    pinService,
	}
}

func (h *messageHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/messages")
	g.Use(serverutils.JwtMiddleware)
	g.Get("", h.Feed)
	g.Get("/search", h.Search)
	g.Get("/attachments", h.Attachments)
	g.Get("/pinned", h.Pinned)
	g.Get("/:id/context", h.ContextWindow)
	g.Get("/:id/thread", h.Thread)
	g.Get("/:id/history", h.EditHistory)
}

func (h *messageHandler) Feed(ctx *fiber.Ctx) error {
	var cursor *time.Time
	if raw := ctx.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid cursor")
		}
		cursor = &parsed
	}
	limit := ctx.QueryInt("limit")

	res, err := h.queryService.Feed(ctx.Context(), cursor, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get feed", res))
}

func (h *messageHandler) Search(ctx *fiber.Ctx) error {
	req := dto.SearchRequest{
		Query:  ctx.Query("q"),
		Limit:  ctx.QueryInt("limit"),
		Offset: ctx.QueryInt("offset"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := h.queryService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search messages", res))
}

func (h *messageHandler) ContextWindow(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	res, err := h.queryService.ContextWindow(ctx.Context(), id, ctx.QueryInt("radius"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get context window", res))
}

func (h *messageHandler) Thread(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	res, err := h.threadService.Resolve(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve thread", res))
}

func (h *messageHandler) Attachments(ctx *fiber.Ctx) error {
	res, err := h.queryService.Attachments(ctx.Context(), ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get attachments", res))
}

func (h *messageHandler) EditHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	res, err := h.queryService.EditHistory(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get edit history", res))
}

func (h *messageHandler) Pinned(ctx *fiber.Ctx) error {
	res, err := h.pinService.Current(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get pinned message", res))
}
