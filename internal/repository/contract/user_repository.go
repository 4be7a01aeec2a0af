package contract

import (
	"context"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByUsernames resolves mention targets; unknown names are skipped.
	FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.User, error)
}
