package service

import (
	"context"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IBookmarkService interface {
	Toggle(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.BookmarkListResponse, error)
}

type bookmarkService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBookmarkService(uowFactory unitofwork.RepositoryFactory) IBookmarkService {
	return &bookmarkService{uowFactory: uowFactory}
}

// Toggle flips the user's bookmark on a message. Bookmarks are private, so
// nothing is broadcast. The returned bool reports the resulting state.
func (s *bookmarkService) Toggle(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return false, err
	}
	if message == nil || message.IsDeleted {
		return false, nil
	}

	existing, err := uow.BookmarkRepository().FindByPair(ctx, messageID, actorID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := uow.BookmarkRepository().DeleteByPair(ctx, messageID, actorID); err != nil {
			return false, err
		}
		return false, nil
	}

	bookmark := model.Bookmark{
		ID:        uuid.New(),
		MessageID: messageID,
		UserID:    actorID,
	}
	if err := uow.BookmarkRepository().Create(ctx, &bookmark); err != nil {
		return false, err
	}
	return true, nil
}

func (s *bookmarkService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.BookmarkListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookmarks, total, err := uow.BookmarkRepository().FindAllByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := dto.BookmarkListResponse{Total: total, Bookmarks: make([]dto.BookmarkResponse, 0, len(bookmarks))}
	for _, bookmark := range bookmarks {
		item := dto.BookmarkResponse{
			ID:        bookmark.ID,
			MessageID: bookmark.MessageID,
			CreatedAt: bookmark.CreatedAt,
		}
		message, err := uow.MessageRepository().FindByID(ctx, bookmark.MessageID)
		if err != nil {
			return nil, err
		}
		if message != nil {
			messageResp := dto.NewMessageResponse(message)
			item.Message = &messageResp
		}
		resp.Bookmarks = append(resp.Bookmarks, item)
	}
	return &resp, nil
}
