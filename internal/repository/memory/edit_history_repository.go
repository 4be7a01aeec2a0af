package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type EditHistoryRepository struct {
	store *Store
}

func NewEditHistoryRepository(store *Store) contract.EditHistoryRepository {
	return &EditHistoryRepository{store: store}
}

func (r *EditHistoryRepository) Create(ctx context.Context, entry *model.MessageEditHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.EditedAt.IsZero() {
		entry.EditedAt = time.Now()
	}
	copied := *entry
	r.store.histories[entry.ID] = &copied
	return nil
}

func (r *EditHistoryRepository) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.MessageEditHistory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var entries []*model.MessageEditHistory
	for _, entry := range r.store.histories {
		if entry.MessageID == messageID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EditedAt.Before(entries[j].EditedAt)
	})
	return entries, nil
}
