package service

import (
	"context"
	"sort"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/repository/specification"
	"chatsync-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IThreadService interface {
	Resolve(ctx context.Context, messageID uuid.UUID) (*dto.ThreadResponse, error)
}

type threadService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewThreadService(uowFactory unitofwork.RepositoryFactory) IThreadService {
	return &threadService{uowFactory: uowFactory}
}

// Resolve walks up the parent chain to the thread root and then collects
// every descendant level by level. Resolving any message of a thread yields
// the same result. A broken chain (parent nulled by deletion) simply makes
// the starting message its own root. Both walks carry a visited set and a
// depth cap so corrupt parent data cannot loop.
func (s *threadService) Resolve(ctx context.Context, messageID uuid.UUID) (*dto.ThreadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MessageRepository()

	start, err := repo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, apperrors.ErrNotFound
	}

	root := start
	visited := map[uuid.UUID]bool{start.ID: true}
	for depth := 0; root.ParentID != nil && depth < constant.ThreadMaxDepth; depth++ {
		if visited[*root.ParentID] {
			break
		}
		parent, err := repo.FindByID(ctx, *root.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		visited[parent.ID] = true
		root = parent
	}

	var replies []dto.MessageResponse
	maxDepth := 0
	frontier := []uuid.UUID{root.ID}
	seen := map[uuid.UUID]bool{root.ID: true}
	for depth := 1; len(frontier) > 0 && depth <= constant.ThreadMaxDepth; depth++ {
		children, err := repo.FindAll(ctx,
			specification.ByParentIDs{ParentIDs: frontier},
			specification.WithAuthor{},
		)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			replies = append(replies, dto.NewMessageResponse(child))
			frontier = append(frontier, child.ID)
		}
		if len(children) > 0 {
			maxDepth = depth
		}
	}

	sort.Slice(replies, func(i, j int) bool {
		if replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].ID.String() < replies[j].ID.String()
		}
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})

	return &dto.ThreadResponse{
		Root:    dto.NewMessageResponse(root),
		Replies: replies,
		Depth:   maxDepth,
	}, nil
}
