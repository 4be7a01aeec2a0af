package service

import (
	"context"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
)

type IReactionService interface {
	Toggle(ctx context.Context, actorID uuid.UUID, req *dto.ReactionToggleRequest) error
}

type reactionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewReactionService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) IReactionService {
	return &reactionService{uowFactory: uowFactory, publisher: publisher, logger: log}
}

// Toggle adds the (message, user, emoji) triple when absent and removes it
// when present, so a double toggle always lands back on the starting state.
func (s *reactionService) Toggle(ctx context.Context, actorID uuid.UUID, req *dto.ReactionToggleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindByID(ctx, req.MessageID)
	if err != nil {
		return err
	}
	if message == nil || message.IsDeleted {
		return nil
	}

	existing, err := uow.ReactionRepository().FindByTriple(ctx, req.MessageID, actorID, req.Emoji)
	if err != nil {
		return err
	}

	if existing != nil {
		if err := uow.ReactionRepository().DeleteByTriple(ctx, req.MessageID, actorID, req.Emoji); err != nil {
			return err
		}
		// Removal only needs the triple; clients drop the row by key.
		payload := dto.ReactionPayload{MessageID: req.MessageID, UserID: actorID, Emoji: req.Emoji}
		if err := s.publisher.Publish(events.NewDelta(events.ReactionRemoved, payload, events.Broadcast())); err != nil {
			s.logger.Error("reaction", "failed to publish reaction.removed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	reaction := model.Reaction{
		ID:        uuid.New(),
		MessageID: req.MessageID,
		UserID:    actorID,
		Emoji:     req.Emoji,
	}
	if err := uow.ReactionRepository().Create(ctx, &reaction); err != nil {
		return err
	}
	payload := dto.ReactionAddedPayload{
		ReactionID:  reaction.ID,
		MessageID:   req.MessageID,
		UserID:      actorID,
		Emoji:       req.Emoji,
		DisplayName: actor.DisplayName,
		AvatarURL:   actor.AvatarURL,
	}
	if err := s.publisher.Publish(events.NewDelta(events.ReactionAdded, payload, events.Broadcast())); err != nil {
		s.logger.Error("reaction", "failed to publish reaction.added", map[string]interface{}{"error": err.Error()})
	}
	return nil
}
