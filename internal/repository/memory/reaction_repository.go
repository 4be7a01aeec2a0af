package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type ReactionRepository struct {
	store *Store
}

func NewReactionRepository(store *Store) contract.ReactionRepository {
	return &ReactionRepository{store: store}
}

func (r *ReactionRepository) Create(ctx context.Context, reaction *model.Reaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if reaction.ID == uuid.Nil {
		reaction.ID = uuid.New()
	}
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now()
	}
	copied := *reaction
	r.store.reactions[reaction.ID] = &copied
	return nil
}

func (r *ReactionRepository) FindByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) (*model.Reaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, reaction := range r.store.reactions {
		if reaction.MessageID == messageID && reaction.UserID == userID && reaction.Emoji == emoji {
			copied := *reaction
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *ReactionRepository) DeleteByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, reaction := range r.store.reactions {
		if reaction.MessageID == messageID && reaction.UserID == userID && reaction.Emoji == emoji {
			delete(r.store.reactions, id)
		}
	}
	return nil
}

func (r *ReactionRepository) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.Reaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var reactions []*model.Reaction
	for _, reaction := range r.store.reactions {
		if reaction.MessageID == messageID {
			copied := *reaction
			reactions = append(reactions, &copied)
		}
	}
	sort.Slice(reactions, func(i, j int) bool {
		return reactions[i].CreatedAt.Before(reactions[j].CreatedAt)
	})
	return reactions, nil
}
