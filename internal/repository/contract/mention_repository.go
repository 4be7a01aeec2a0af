package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type MentionRepository interface {
	CreateBatch(ctx context.Context, mentions []*model.Mention) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mention, error)
	Update(ctx context.Context, mention *model.Mention) error
	// ResetByMessageID flips every mention on the message back to unread.
	ResetByMessageID(ctx context.Context, messageID uuid.UUID) error
	FindByMessageID(ctx context.Context, messageID uuid.UUID) ([]*model.Mention, error)
	FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*model.Mention, error)
}
