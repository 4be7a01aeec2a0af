package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"chatsync-be/internal/authz"
	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/pkg/linkpreview"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/pkg/sanitizer"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// extractMentionUsernames returns the deduplicated @usernames in order of
// first appearance.
func extractMentionUsernames(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	var usernames []string
	for _, match := range matches {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			usernames = append(usernames, name)
		}
	}
	return usernames
}

type IMessageService interface {
	Send(ctx context.Context, actorID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Edit(ctx context.Context, actorID uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error
	Restore(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	RunExpirySweeper(ctx context.Context, interval time.Duration)
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	guard      *authz.Guard
	sanitizer  *sanitizer.Sanitizer
	previews   *linkpreview.Fetcher
	pins       *PinLock
	logger     logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	guard *authz.Guard,
	contentSanitizer *sanitizer.Sanitizer,
	previews *linkpreview.Fetcher,
	pins *PinLock,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		publisher:  publisher,
		guard:      guard,
		sanitizer:  contentSanitizer,
		previews:   previews,
		pins:       pins,
		logger:     log,
	}
}

func (s *messageService) Send(ctx context.Context, actorID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Kind == constant.MessageKindText && (req.Content == nil || strings.TrimSpace(*req.Content) == "") {
		return nil, apperrors.ErrValidation
	}
	if req.Kind != constant.MessageKindText && req.FileURL == nil {
		return nil, apperrors.ErrValidation
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	message := model.Message{
		ID:       uuid.New(),
		AuthorID: actorID,
		Kind:     req.Kind,
		FileURL:  req.FileURL,
		FileName: req.FileName,
	}
	if req.Content != nil {
		clean := s.sanitizer.Sanitize(*req.Content)
		message.Content = &clean
	}
	if req.TTLSeconds != nil {
		expiresAt := time.Now().Add(time.Duration(*req.TTLSeconds) * time.Second)
		message.ExpiresAt = &expiresAt
	}
	if req.ParentID != nil {
		// A reply to a missing or deleted parent is stored as a root message
		// rather than rejected; the parent may have been deleted in flight.
		parent, err := uow.MessageRepository().FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil && !parent.IsDeleted {
			message.ParentID = req.ParentID
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	if message.Content != nil {
		if err := s.createMentions(ctx, uow, &message, nil); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	message.Author = actor
	resp := dto.NewMessageResponse(&message)
	if err := s.publisher.Publish(events.NewDelta(events.MessageNew, resp, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish message.new", map[string]interface{}{"error": err.Error()})
	}

	if message.Content != nil {
		if pageURL := linkpreview.FirstURL(*message.Content); pageURL != "" {
			go s.attachLinkPreview(message.ID, pageURL)
		}
	}

	return &resp, nil
}

// createMentions extracts @usernames, resolves them against the user table
// and writes mention rows inside the caller's transaction. Unknown usernames
// are ignored. existing holds user ids that already have a row (edits).
func (s *messageService) createMentions(ctx context.Context, uow unitofwork.UnitOfWork, message *model.Message, existing map[uuid.UUID]bool) error {
	usernames := extractMentionUsernames(*message.Content)
	if len(usernames) == 0 {
		return nil
	}
	users, err := uow.UserRepository().FindByUsernames(ctx, usernames)
	if err != nil {
		return err
	}
	var mentions []*model.Mention
	for _, user := range users {
		if user.ID == message.AuthorID {
			continue
		}
		if existing[user.ID] {
			continue
		}
		mentions = append(mentions, &model.Mention{
			ID:        uuid.New(),
			MessageID: message.ID,
			UserID:    user.ID,
		})
	}
	if len(mentions) == 0 {
		return nil
	}
	return uow.MentionRepository().CreateBatch(ctx, mentions)
}

// attachLinkPreview runs outside the send transaction: the message is already
// broadcast and the preview arrives as a follow-up message.updated.
func (s *messageService) attachLinkPreview(messageID uuid.UUID, pageURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), constant.LinkPreviewTimeout)
	defer cancel()

	meta, err := s.previews.Fetch(ctx, pageURL)
	if err != nil || meta == nil {
		return
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(context.Background())
	message, err := uow.MessageRepository().FindByID(context.Background(), messageID)
	if err != nil || message == nil || message.IsDeleted {
		return
	}
	message.LinkMetadata = raw
	if err := uow.MessageRepository().Update(context.Background(), message); err != nil {
		s.logger.Error("message", "failed to store link preview", map[string]interface{}{"error": err.Error(), "message_id": messageID})
		return
	}
	resp := dto.NewMessageResponse(message)
	if err := s.publisher.Publish(events.NewDelta(events.MessageUpdated, resp, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish preview update", map[string]interface{}{"error": err.Error()})
	}
}

func (s *messageService) Edit(ctx context.Context, actorID uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	message, err := uow.MessageRepository().FindByID(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}
	if message == nil || message.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	if message.Kind != constant.MessageKindText {
		return nil, apperrors.ErrValidation
	}
	if err := s.guard.CanEdit(actor, message, time.Now()); err != nil {
		return nil, err
	}

	clean := s.sanitizer.Sanitize(req.Content)
	if strings.TrimSpace(clean) == "" {
		return nil, apperrors.ErrValidation
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	prior := ""
	if message.Content != nil {
		prior = *message.Content
	}
	history := model.MessageEditHistory{
		ID:           uuid.New(),
		MessageID:    message.ID,
		PriorContent: prior,
	}
	if err := uow.EditHistoryRepository().Create(ctx, &history); err != nil {
		return nil, err
	}

	now := time.Now()
	message.Content = &clean
	message.UpdatedAt = &now
	// The old preview may describe a URL the edit removed.
	message.LinkMetadata = nil
	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}

	// Every existing mention flips back to unread so the new content gets
	// re-acknowledged; users newly @mentioned by the edit gain fresh rows.
	if err := uow.MentionRepository().ResetByMessageID(ctx, message.ID); err != nil {
		return nil, err
	}
	current, err := uow.MentionRepository().FindByMessageID(ctx, message.ID)
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]bool, len(current))
	for _, mention := range current {
		existing[mention.UserID] = true
	}
	if err := s.createMentions(ctx, uow, message, existing); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	message.Author = actor
	resp := dto.NewMessageResponse(message)
	if err := s.publisher.Publish(events.NewDelta(events.MessageUpdated, resp, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish message.updated", map[string]interface{}{"error": err.Error()})
	}

	if pageURL := linkpreview.FirstURL(clean); pageURL != "" {
		go s.attachLinkPreview(message.ID, pageURL)
	}

	return &resp, nil
}

func (s *messageService) Delete(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	// Delete reads and clears the pin flag, so it takes the same lock as a
	// pin toggle; the IsPinned it sees is the one it mutates.
	s.pins.Lock()
	defer s.pins.Unlock()

	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	// Deleting a missing or already-deleted message is a silent no-op.
	if message == nil || message.IsDeleted {
		return nil
	}
	if err := s.guard.CanDelete(actor, message); err != nil {
		return err
	}

	wasPinned := message.IsPinned
	message.IsDeleted = true
	message.WasPinned = wasPinned
	message.IsPinned = false
	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return err
	}

	// Clients only need the id to tombstone their local copy.
	if err := s.publisher.Publish(events.NewDelta(events.MessageDeleted, dto.MessageDeletedPayload{MessageID: message.ID}, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish message.deleted", map[string]interface{}{"error": err.Error()})
	}
	if wasPinned {
		payload := dto.PinChangedPayload{Pinned: nil, ActorID: actorID, Previous: &message.ID}
		if err := s.publisher.Publish(events.NewDelta(events.PinChanged, payload, events.Broadcast())); err != nil {
			s.logger.Error("message", "failed to publish pin.changed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *messageService) Restore(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.UserRepository().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	// The re-pin below races concurrent toggles without this; clear-then-set
	// must not interleave with another clear-then-set.
	s.pins.Lock()
	defer s.pins.Unlock()

	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil || !message.IsDeleted {
		return nil
	}
	if err := s.guard.CanRestore(actor, message); err != nil {
		return err
	}
	// An expired message stays dead even if the reaper has not removed it yet.
	if message.ExpiresAt != nil && !message.ExpiresAt.After(time.Now()) {
		return apperrors.ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	rePinned := message.WasPinned
	if rePinned {
		// Restoring a formerly pinned message displaces whatever got pinned
		// in the meantime.
		if err := uow.MessageRepository().ClearAllPinned(ctx); err != nil {
			return err
		}
		message.IsPinned = true
	}
	message.IsDeleted = false
	message.WasPinned = false
	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return err
	}

	bookmarkers, err := uow.BookmarkRepository().FindUserIDsByMessage(ctx, message.ID)
	if err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	message.Author = actor
	resp := dto.NewMessageResponse(message)
	if err := s.publisher.Publish(events.NewDelta(events.MessageRestored, resp, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish message.restored", map[string]interface{}{"error": err.Error()})
	}
	if rePinned {
		payload := dto.PinChangedPayload{Pinned: &resp, ActorID: actorID}
		if err := s.publisher.Publish(events.NewDelta(events.PinChanged, payload, events.Broadcast())); err != nil {
			s.logger.Error("message", "failed to publish pin.changed", map[string]interface{}{"error": err.Error()})
		}
	}
	for _, userID := range bookmarkers {
		payload := dto.BookmarkRestoredPayload{MessageID: message.ID}
		if err := s.publisher.Publish(events.NewDelta(events.BookmarkRestored, payload, events.ToUser(userID))); err != nil {
			s.logger.Error("message", "failed to publish bookmark.restored", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// SweepExpired hard-deletes every message past its ExpiresAt and broadcasts
// the removed ids in one batch. Returns the number of messages reaped.
func (s *messageService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	expired, err := uow.MessageRepository().FindExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	pinRemoved := false
	for _, message := range expired {
		ids = append(ids, message.ID)
		if message.IsPinned {
			pinRemoved = true
		}
	}
	if err := uow.MessageRepository().HardDeleteByIDs(ctx, ids); err != nil {
		return 0, err
	}

	payload := dto.ExpiredBatchPayload{MessageIDs: ids, ExpiredAt: now}
	if err := s.publisher.Publish(events.NewDelta(events.MessageExpiredBatch, payload, events.Broadcast())); err != nil {
		s.logger.Error("message", "failed to publish message.expired_batch", map[string]interface{}{"error": err.Error()})
	}
	if pinRemoved {
		pinPayload := dto.PinChangedPayload{Pinned: nil, ActorID: uuid.Nil}
		if err := s.publisher.Publish(events.NewDelta(events.PinChanged, pinPayload, events.Broadcast())); err != nil {
			s.logger.Error("message", "failed to publish pin.changed", map[string]interface{}{"error": err.Error()})
		}
	}
	return len(ids), nil
}

func (s *messageService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if count, err := s.SweepExpired(ctx, now); err != nil {
				s.logger.Error("message", "expiry sweep failed", map[string]interface{}{"error": err.Error()})
			} else if count > 0 {
				s.logger.Info("message", "expired messages reaped", map[string]interface{}{"count": count})
			}
		}
	}
}
