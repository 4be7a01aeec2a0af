package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type DeviceRepository struct {
	store *Store
}

func NewDeviceRepository(store *Store) contract.DeviceRepository {
	return &DeviceRepository{store: store}
}

func (r *DeviceRepository) Create(ctx context.Context, device *model.Device) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if device.ConnectedAt.IsZero() {
		device.ConnectedAt = time.Now()
	}
	copied := *device
	r.store.devices[device.ID] = &copied
	return nil
}

func (r *DeviceRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.Device, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, device := range r.store.devices {
		if device.SessionID == sessionID {
			copied := *device
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DeviceRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*model.Device, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var devices []*model.Device
	for _, device := range r.store.devices {
		if device.UserID == userID {
			copied := *device
			devices = append(devices, &copied)
		}
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].ConnectedAt.Before(devices[j].ConnectedAt)
	})
	return devices, nil
}

func (r *DeviceRepository) DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, device := range r.store.devices {
		if device.SessionID == sessionID {
			delete(r.store.devices, id)
		}
	}
	return nil
}

func (r *DeviceRepository) TouchLastActive(ctx context.Context, sessionID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, device := range r.store.devices {
		if device.SessionID == sessionID {
			device.LastActiveAt = time.Now()
		}
	}
	return nil
}
