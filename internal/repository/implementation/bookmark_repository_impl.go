package implementation

import (
	"context"
	"errors"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkRepositoryImpl struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return &BookmarkRepositoryImpl{db: db}
}

func (r *BookmarkRepositoryImpl) Create(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *BookmarkRepositoryImpl) FindByPair(ctx context.Context, messageID, userID uuid.UUID) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.db.WithContext(ctx).First(&bookmark, "message_id = ? AND user_id = ?", messageID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bookmark, nil
}

func (r *BookmarkRepositoryImpl) DeleteByPair(ctx context.Context, messageID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&model.Bookmark{}).Error
}

func (r *BookmarkRepositoryImpl) FindAllByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Bookmark, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Bookmark{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookmarks []*model.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Message").
		Preload("Message.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

func (r *BookmarkRepositoryImpl) FindUserIDsByMessage(ctx context.Context, messageID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("message_id = ?", messageID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
