package implementation

import (
	"context"
	"errors"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceRepositoryImpl struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) contract.DeviceRepository {
	return &DeviceRepositoryImpl{db: db}
}

func (r *DeviceRepositoryImpl) Create(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *DeviceRepositoryImpl) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.Device, error) {
	var device model.Device
	if err := r.db.WithContext(ctx).First(&device, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (r *DeviceRepositoryImpl) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*model.Device, error) {
	var devices []*model.Device
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("connected_at ASC").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *DeviceRepositoryImpl) DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.Device{}).Error
}

func (r *DeviceRepositoryImpl) TouchLastActive(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Device{}).
		Where("session_id = ?", sessionID).
		Update("last_active_at", time.Now()).Error
}
