package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.Device, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*model.Device, error)
	DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) error
	TouchLastActive(ctx context.Context, sessionID uuid.UUID) error
}
