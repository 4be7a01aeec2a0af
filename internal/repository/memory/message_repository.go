package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"
	"chatsync-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.store.messages[message.ID] = &copied
	return nil
}

func (r *MessageRepository) Update(ctx context.Context, message *model.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages[message.ID] = &copied
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if m, ok := r.store.messages[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *MessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*model.Message, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *MessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Message, error) {
	r.store.mu.RLock()
	var matches []*model.Message
	for _, m := range r.store.messages {
		if matchesMessage(m, specs) {
			copied := *m
			matches = append(matches, &copied)
		}
	}
	r.store.mu.RUnlock()

	applyOrdering(matches, specs)
	return applyPagination(matches, specs), nil
}

func (r *MessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, m := range r.store.messages {
		if matchesMessage(m, specs) {
			count++
		}
	}
	return count, nil
}

func (r *MessageRepository) ClearAllPinned(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.messages {
		m.IsPinned = false
	}
	return nil
}

func (r *MessageRepository) FindExpired(ctx context.Context, now time.Time) ([]*model.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var expired []*model.Message
	for _, m := range r.store.messages {
		if m.ExpiresAt != nil && !m.ExpiresAt.After(now) {
			copied := *m
			expired = append(expired, &copied)
		}
	}
	return expired, nil
}

func (r *MessageRepository) HardDeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		delete(r.store.messages, id)
	}
	return nil
}

// matchesMessage interprets the filtering specifications the gorm layer
// translates to SQL. Ordering and pagination specs are handled separately;
// unknown specs are ignored.
func matchesMessage(m *model.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.ID != s.ID {
				return false
			}
		case specification.ByIDs:
			if !containsID(s.IDs, m.ID) {
				return false
			}
		case specification.ByAuthorID:
			if m.AuthorID != s.AuthorID {
				return false
			}
		case specification.ByParentID:
			if s.ParentID == nil {
				if m.ParentID != nil {
					return false
				}
			} else if m.ParentID == nil || *m.ParentID != *s.ParentID {
				return false
			}
		case specification.ByParentIDs:
			if m.ParentID == nil || !containsID(s.ParentIDs, *m.ParentID) {
				return false
			}
		case specification.NotDeleted:
			if m.IsDeleted {
				return false
			}
		case specification.NotExpired:
			if m.ExpiresAt != nil && !m.ExpiresAt.After(s.Now) {
				return false
			}
		case specification.Pinned:
			if !m.IsPinned {
				return false
			}
		case specification.ByKind:
			if m.Kind != s.Kind {
				return false
			}
		case specification.ContentContains:
			if m.Content == nil || !strings.Contains(strings.ToLower(*m.Content), strings.ToLower(s.Query)) {
				return false
			}
		case specification.CreatedBefore:
			if !m.CreatedAt.Before(s.Cursor) {
				return false
			}
		case specification.CreatedAfter:
			if !m.CreatedAt.After(s.Cursor) {
				return false
			}
		}
	}
	return true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func applyOrdering(messages []*model.Message, specs []specification.Specification) {
	for _, spec := range specs {
		order, ok := spec.(specification.OrderBy)
		if !ok {
			continue
		}
		sort.SliceStable(messages, func(i, j int) bool {
			a, b := messages[i], messages[j]
			if order.Field == "created_at" && !a.CreatedAt.Equal(b.CreatedAt) {
				if order.Desc {
					return a.CreatedAt.After(b.CreatedAt)
				}
				return a.CreatedAt.Before(b.CreatedAt)
			}
			// Ties fall back to id for deterministic output.
			if order.Desc {
				return a.ID.String() > b.ID.String()
			}
			return a.ID.String() < b.ID.String()
		})
	}
}

func applyPagination(messages []*model.Message, specs []specification.Specification) []*model.Message {
	for _, spec := range specs {
		page, ok := spec.(specification.Pagination)
		if !ok {
			continue
		}
		start := page.Offset
		if start > len(messages) {
			start = len(messages)
		}
		end := start + page.Limit
		if page.Limit <= 0 || end > len(messages) {
			end = len(messages)
		}
		messages = messages[start:end]
	}
	return messages
}
