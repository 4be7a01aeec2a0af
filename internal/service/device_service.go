package service

import (
	"context"
	"time"

	"chatsync-be/internal/authz"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	presenceTTL     = 90 * time.Second
	presenceJanitor = 30 * time.Second
)

type IDeviceService interface {
	Register(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, description string) error
	Unregister(ctx context.Context, sessionID uuid.UUID) error
	Heartbeat(ctx context.Context, sessionID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, currentSessionID uuid.UUID) ([]dto.DeviceResponse, error)
	Revoke(ctx context.Context, actorID uuid.UUID, sessionID uuid.UUID) error
	IsOnline(userID uuid.UUID) bool
}

// deviceService owns the session registry (durable rows) and the presence
// registry (TTL cache refreshed by heartbeats). A user is online while at
// least one unexpired session entry exists; the cache janitor turns a missed
// heartbeat into an offline transition.
type deviceService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	presence   *gocache.Cache
	logger     logger.ILogger
	guard      *authz.Guard
}

func NewDeviceService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, guard *authz.Guard, log logger.ILogger) IDeviceService {
	s := &deviceService{
		uowFactory: uowFactory,
		publisher:  publisher,
		presence:   gocache.New(presenceTTL, presenceJanitor),
		guard:      guard,
		logger:     log,
	}
	s.presence.OnEvicted(func(key string, _ interface{}) {
		userID, err := uuid.Parse(key)
		if err != nil {
			return
		}
		s.publishPresence(userID, false)
	})
	return s
}

func (s *deviceService) publishPresence(userID uuid.UUID, online bool) {
	payload := dto.PresencePayload{UserID: userID, Online: online}
	if err := s.publisher.Publish(events.NewDelta(events.PresenceChanged, payload, events.Broadcast())); err != nil {
		s.logger.Error("device", "failed to publish presence.changed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *deviceService) Register(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, description string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	device := model.Device{
		ID:          uuid.New(),
		UserID:      userID,
		SessionID:   sessionID,
		Description: description,
	}
	if err := uow.DeviceRepository().Create(ctx, &device); err != nil {
		return err
	}

	key := userID.String()
	_, wasOnline := s.presence.Get(key)
	s.presence.Set(key, sessionID, presenceTTL)
	if !wasOnline {
		s.publishPresence(userID, true)
	}
	return nil
}

func (s *deviceService) Unregister(ctx context.Context, sessionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	device, err := uow.DeviceRepository().FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if device == nil {
		return nil
	}
	if err := uow.DeviceRepository().DeleteBySessionID(ctx, sessionID); err != nil {
		return err
	}

	remaining, err := uow.DeviceRepository().FindAllByUser(ctx, device.UserID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		// Delete fires the eviction hook, which broadcasts the offline
		// transition exactly once.
		s.presence.Delete(device.UserID.String())
	}
	return nil
}

func (s *deviceService) Heartbeat(ctx context.Context, sessionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	device, err := uow.DeviceRepository().FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if device == nil {
		return nil
	}
	if err := uow.DeviceRepository().TouchLastActive(ctx, sessionID); err != nil {
		return err
	}
	s.presence.Set(device.UserID.String(), sessionID, presenceTTL)
	return nil
}

func (s *deviceService) List(ctx context.Context, userID uuid.UUID, currentSessionID uuid.UUID) ([]dto.DeviceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	devices, err := uow.DeviceRepository().FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.DeviceResponse, 0, len(devices))
	for _, device := range devices {
		responses = append(responses, dto.DeviceResponse{
			ID:           device.ID,
			SessionID:    device.SessionID,
			Description:  device.Description,
			ConnectedAt:  device.ConnectedAt,
			LastActiveAt: device.LastActiveAt,
			Current:      device.SessionID == currentSessionID,
		})
	}
	return responses, nil
}

// Revoke force-logs-out one of the actor's own sessions. The targeted session
// receives a directed logout frame before its registry row is removed.
func (s *deviceService) Revoke(ctx context.Context, actorID uuid.UUID, sessionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	device, err := uow.DeviceRepository().FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if device == nil {
		return apperrors.ErrNotFound
	}
	if err := s.guard.CanRevokeSession(actor, device); err != nil {
		return err
	}

	payload := dto.ForceLogoutPayload{SessionID: sessionID, Reason: "revoked by account owner"}
	if err := s.publisher.Publish(events.NewDelta(events.ForceLogout, payload, events.ToSession(sessionID))); err != nil {
		s.logger.Error("device", "failed to publish session.force_logout", map[string]interface{}{"error": err.Error()})
	}
	return s.Unregister(ctx, sessionID)
}

func (s *deviceService) IsOnline(userID uuid.UUID) bool {
	_, online := s.presence.Get(userID.String())
	return online
}
