package service

import (
	"context"
	"time"

	"chatsync-be/internal/authz"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
)

type IMentionService interface {
	Ack(ctx context.Context, actorID uuid.UUID, mentionID uuid.UUID) error
	Unread(ctx context.Context, userID uuid.UUID) ([]dto.MentionResponse, error)
}

type mentionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	guard      *authz.Guard
	logger     logger.ILogger
}

func NewMentionService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, guard *authz.Guard, log logger.ILogger) IMentionService {
	return &mentionService{uowFactory: uowFactory, publisher: publisher, guard: guard, logger: log}
}

// Ack marks one mention read. Only the mentioned user may acknowledge it, and
// acknowledging an already-read mention emits nothing.
func (s *mentionService) Ack(ctx context.Context, actorID uuid.UUID, mentionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	mention, err := uow.MentionRepository().FindByID(ctx, mentionID)
	if err != nil {
		return err
	}
	if mention == nil {
		return nil
	}
	if err := s.guard.CanAckMention(actor, mention); err != nil {
		return err
	}
	if mention.IsRead {
		return nil
	}

	message, err := uow.MessageRepository().FindByID(ctx, mention.MessageID)
	if err != nil {
		return err
	}

	now := time.Now()
	mention.IsRead = true
	mention.ReadAt = &now
	if err := uow.MentionRepository().Update(ctx, mention); err != nil {
		return err
	}

	payload := dto.MentionPayload{
		MentionID: mention.ID,
		MessageID: mention.MessageID,
		UserID:    mention.UserID,
		ReadAt:    &now,
	}
	// The acknowledgement is per-user read state; only the message author
	// learns about it, never the whole channel.
	if message != nil {
		if err := s.publisher.Publish(events.NewDelta(events.MentionRead, payload, events.ToUser(message.AuthorID))); err != nil {
			s.logger.Error("mention", "failed to publish mention.read", map[string]interface{}{"error": err.Error()})
		}
	}
	// The reader's other sessions clear their badge too.
	if err := s.publisher.Publish(events.NewDelta(events.MentionReadSelf, payload, events.ToUser(actorID))); err != nil {
		s.logger.Error("mention", "failed to publish mention.read_self", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *mentionService) Unread(ctx context.Context, userID uuid.UUID) ([]dto.MentionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mentions, err := uow.MentionRepository().FindUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MentionResponse, 0, len(mentions))
	for _, mention := range mentions {
		resp := dto.MentionResponse{
			ID:        mention.ID,
			MessageID: mention.MessageID,
			IsRead:    mention.IsRead,
			CreatedAt: mention.CreatedAt,
		}
		message, err := uow.MessageRepository().FindByID(ctx, mention.MessageID)
		if err != nil {
			return nil, err
		}
		if message != nil && !message.IsDeleted {
			messageResp := dto.NewMessageResponse(message)
			resp.Message = &messageResp
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
