package service

import (
	"context"
	"sync"
	"time"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
)

type IReceiptService interface {
	Mark(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error
	Flush(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

// receiptService upserts every receipt at mark time, so a reconnecting client
// always sees accurate read history, and buffers the pairs for the broadcast
// only. One flush announces every buffered pair as a single batch event, so a
// fast reader scrolling a hundred messages costs one frame, not a hundred.
type receiptService struct {
	mu      sync.Mutex
	pending map[uuid.UUID]map[uuid.UUID]bool // messageID -> set of userIDs

	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewReceiptService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) IReceiptService {
	return &receiptService{
		pending:    make(map[uuid.UUID]map[uuid.UUID]bool),
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Mark durably records the (user, message) receipt immediately; only the
// batch broadcast is deferred to the next flush. Marks against missing
// messages are dropped.
func (s *receiptService) Mark(ctx context.Context, actorID uuid.UUID, messageID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return nil
	}

	receipt := model.ReadReceipt{
		ID:        uuid.New(),
		MessageID: messageID,
		UserID:    actorID,
	}
	if err := uow.ReadReceiptRepository().Upsert(ctx, &receipt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, ok := s.pending[messageID]
	if !ok {
		users = make(map[uuid.UUID]bool)
		s.pending[messageID] = users
	}
	users[actorID] = true
	return nil
}

func (s *receiptService) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[uuid.UUID]map[uuid.UUID]bool)
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payload := dto.ReceiptBatchPayload{}
	for messageID, users := range batch {
		// One bad entry must not sink the rest of the batch; the receipts are
		// already persisted, this loop only shapes the broadcast.
		message, err := uow.MessageRepository().FindByID(ctx, messageID)
		if err != nil {
			s.logger.Error("receipt", "failed to load message for batch", map[string]interface{}{"error": err.Error(), "message_id": messageID})
			continue
		}
		// Messages reaped between mark and flush are left out of the frame.
		if message == nil {
			continue
		}
		entry := dto.ReceiptEntry{MessageID: messageID}
		for userID := range users {
			entry.UserIDs = append(entry.UserIDs, userID)
		}
		payload.Receipts = append(payload.Receipts, entry)
	}

	if len(payload.Receipts) == 0 {
		return nil
	}
	if err := s.publisher.Publish(events.NewDelta(events.ReceiptBatch, payload, events.Broadcast())); err != nil {
		s.logger.Error("receipt", "failed to publish receipt.batch", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *receiptService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Final flush so marks buffered at shutdown still get announced.
			if err := s.Flush(context.Background()); err != nil {
				s.logger.Error("receipt", "final flush failed", map[string]interface{}{"error": err.Error()})
			}
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("receipt", "flush failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
