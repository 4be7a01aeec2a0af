package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	FindByPair(ctx context.Context, messageID, userID uuid.UUID) (*model.Bookmark, error)
	DeleteByPair(ctx context.Context, messageID, userID uuid.UUID) error
	FindAllByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Bookmark, int64, error)
	// FindUserIDsByMessage lists everyone who bookmarked the message, used to
	// re-notify bookmark owners when a deleted message is restored.
	FindUserIDsByMessage(ctx context.Context, messageID uuid.UUID) ([]uuid.UUID, error)
}
