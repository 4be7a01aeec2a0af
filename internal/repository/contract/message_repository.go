package contract

import (
	"context"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	Update(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ClearAllPinned removes the pin flag from every message. The pin
	// coordinator calls it immediately before setting a new pin.
	ClearAllPinned(ctx context.Context) error

	// FindExpired returns non-deleted-or-deleted messages whose ExpiresAt has
	// passed. HardDeleteByIDs removes rows permanently (expiry reaping only).
	FindExpired(ctx context.Context, now time.Time) ([]*model.Message, error)
	HardDeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
