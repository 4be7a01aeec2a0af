package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type EditHistoryRepository interface {
	Create(ctx context.Context, entry *model.MessageEditHistory) error
	FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.MessageEditHistory, error)
}
