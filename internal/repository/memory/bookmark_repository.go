package memory

import (
	"context"
	"sort"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
)

type BookmarkRepository struct {
	store *Store
}

func NewBookmarkRepository(store *Store) contract.BookmarkRepository {
	return &BookmarkRepository{store: store}
}

func (r *BookmarkRepository) Create(ctx context.Context, bookmark *model.Bookmark) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now()
	}
	copied := *bookmark
	r.store.bookmarks[bookmark.ID] = &copied
	return nil
}

func (r *BookmarkRepository) FindByPair(ctx context.Context, messageID, userID uuid.UUID) (*model.Bookmark, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, b := range r.store.bookmarks {
		if b.MessageID == messageID && b.UserID == userID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *BookmarkRepository) DeleteByPair(ctx context.Context, messageID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, b := range r.store.bookmarks {
		if b.MessageID == messageID && b.UserID == userID {
			delete(r.store.bookmarks, id)
		}
	}
	return nil
}

func (r *BookmarkRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Bookmark, int64, error) {
	r.store.mu.RLock()
	var bookmarks []*model.Bookmark
	for _, b := range r.store.bookmarks {
		if b.UserID == userID {
			copied := *b
			bookmarks = append(bookmarks, &copied)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(bookmarks, func(i, j int) bool {
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})

	total := int64(len(bookmarks))
	if offset > len(bookmarks) {
		offset = len(bookmarks)
	}
	end := offset + limit
	if limit <= 0 || end > len(bookmarks) {
		end = len(bookmarks)
	}
	return bookmarks[offset:end], total, nil
}

func (r *BookmarkRepository) FindUserIDsByMessage(ctx context.Context, messageID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var userIDs []uuid.UUID
	for _, b := range r.store.bookmarks {
		if b.MessageID == messageID {
			userIDs = append(userIDs, b.UserID)
		}
	}
	return userIDs, nil
}
