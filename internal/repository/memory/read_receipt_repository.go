package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type ReadReceiptRepository struct {
	store *Store
}

func NewReadReceiptRepository(store *Store) contract.ReadReceiptRepository {
	return &ReadReceiptRepository{store: store}
}

func (r *ReadReceiptRepository) Upsert(ctx context.Context, receipt *model.ReadReceipt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	// Duplicate pair is a no-op, mirroring the ON CONFLICT DO NOTHING clause.
	for _, existing := range r.store.receipts {
		if existing.MessageID == receipt.MessageID && existing.UserID == receipt.UserID {
			return nil
		}
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	copied := *receipt
	r.store.receipts[receipt.ID] = &copied
	return nil
}

func (r *ReadReceiptRepository) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.ReadReceipt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var receipts []*model.ReadReceipt
	for _, receipt := range r.store.receipts {
		if receipt.MessageID == messageID {
			copied := *receipt
			receipts = append(receipts, &copied)
		}
	}
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.Before(receipts[j].CreatedAt)
	})
	return receipts, nil
}
