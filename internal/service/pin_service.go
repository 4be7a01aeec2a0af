package service

import (
	"context"
	"sync"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/specification"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
)

type IPinService interface {
	Toggle(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error
	Current(ctx context.Context) (*dto.MessageResponse, error)
}

// PinLock serializes every pin mutation. Toggles, the unpin on delete and the
// re-pin on restore all contend on the same lock, so no interleaving can
// leave two messages pinned at once.
type PinLock struct {
	mu sync.Mutex
}

func NewPinLock() *PinLock {
	return &PinLock{}
}

func (l *PinLock) Lock()   { l.mu.Lock() }
func (l *PinLock) Unlock() { l.mu.Unlock() }

type pinService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	pins       *PinLock
	logger     logger.ILogger
}

func NewPinService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, pins *PinLock, log logger.ILogger) IPinService {
	return &pinService{uowFactory: uowFactory, publisher: publisher, pins: pins, logger: log}
}

func (s *pinService) Toggle(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error {
	s.pins.Lock()
	defer s.pins.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil || message.IsDeleted {
		return nil
	}

	if message.IsPinned {
		message.IsPinned = false
		if err := uow.MessageRepository().Update(ctx, message); err != nil {
			return err
		}
		payload := dto.PinChangedPayload{Pinned: nil, ActorID: actorID, Previous: &message.ID}
		if err := s.publisher.Publish(events.NewDelta(events.PinChanged, payload, events.Broadcast())); err != nil {
			s.logger.Error("pin", "failed to publish pin.changed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	previous, err := uow.MessageRepository().FindOne(ctx, specification.Pinned{})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().ClearAllPinned(ctx); err != nil {
		return err
	}
	message.IsPinned = true
	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	resp := dto.NewMessageResponse(message)
	payload := dto.PinChangedPayload{Pinned: &resp, ActorID: actorID}
	if previous != nil {
		payload.Previous = &previous.ID
	}
	if err := s.publisher.Publish(events.NewDelta(events.PinChanged, payload, events.Broadcast())); err != nil {
		s.logger.Error("pin", "failed to publish pin.changed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *pinService) Current(ctx context.Context) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.Pinned{}, specification.NotDeleted{}, specification.WithAuthor{})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, nil
	}
	resp := dto.NewMessageResponse(message)
	return &resp, nil
}
