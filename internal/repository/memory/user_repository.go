package memory

import (
	"context"
	"time"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"
	"chatsync-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	wanted := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		wanted[name] = true
	}
	var users []*model.User
	for _, u := range r.store.users {
		if wanted[u.Username] {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var users []*model.User
	for _, u := range r.store.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}
