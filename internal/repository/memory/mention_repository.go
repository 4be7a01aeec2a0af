package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type MentionRepository struct {
	store *Store
}

func NewMentionRepository(store *Store) contract.MentionRepository {
	return &MentionRepository{store: store}
}

func (r *MentionRepository) CreateBatch(ctx context.Context, mentions []*model.Mention) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, mention := range mentions {
		if mention.ID == uuid.Nil {
			mention.ID = uuid.New()
		}
		if mention.CreatedAt.IsZero() {
			mention.CreatedAt = time.Now()
		}
		copied := *mention
		r.store.mentions[mention.ID] = &copied
	}
	return nil
}

func (r *MentionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Mention, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if m, ok := r.store.mentions[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *MentionRepository) Update(ctx context.Context, mention *model.Mention) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *mention
	r.store.mentions[mention.ID] = &copied
	return nil
}

func (r *MentionRepository) ResetByMessageID(ctx context.Context, messageID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, mention := range r.store.mentions {
		if mention.MessageID == messageID {
			mention.IsRead = false
			mention.ReadAt = nil
		}
	}
	return nil
}

func (r *MentionRepository) FindByMessageID(ctx context.Context, messageID uuid.UUID) ([]*model.Mention, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var mentions []*model.Mention
	for _, mention := range r.store.mentions {
		if mention.MessageID == messageID {
			copied := *mention
			mentions = append(mentions, &copied)
		}
	}
	return mentions, nil
}

func (r *MentionRepository) FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*model.Mention, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var mentions []*model.Mention
	for _, mention := range r.store.mentions {
		if mention.UserID == userID && !mention.IsRead {
			copied := *mention
			mentions = append(mentions, &copied)
		}
	}
	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].CreatedAt.After(mentions[j].CreatedAt)
	})
	return mentions, nil
}
