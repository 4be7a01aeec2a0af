package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type ReactionRepository interface {
	Create(ctx context.Context, reaction *model.Reaction) error
	FindByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) (*model.Reaction, error)
	DeleteByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) error
	FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.Reaction, error)
}
