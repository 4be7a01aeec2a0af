package handler

import (
	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/serverutils"
	"chatsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookmarkHandler interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
}

type bookmarkHandler struct {
	bookmarkService service.IBookmarkService
}

func NewBookmarkHandler(bookmarkService service.IBookmarkService) IBookmarkHandler {
	return &bookmarkHandler{bookmarkService: bookmarkService}
}

func (h *bookmarkHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/bookmarks")
	g.Use(serverutils.JwtMiddleware)
	g.Get("", h.List)
	g.Post("", h.Toggle)
}

func (h *bookmarkHandler) List(ctx *fiber.Ctx) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	res, err := h.bookmarkService.List(ctx.Context(), userID, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bookmarks", res))
}

func (h *bookmarkHandler) Toggle(ctx *fiber.Ctx) error {
	userID, err := actorID(ctx)
	if err != nil {
		return err
	}

	var req dto.BookmarkToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	bookmarked, err := h.bookmarkService.Toggle(ctx.Context(), userID, req.MessageID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle bookmark", fiber.Map{"bookmarked": bookmarked}))
}

// actorID extracts the authenticated user id set by the JWT middleware.
func actorID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}
