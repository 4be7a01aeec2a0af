package service

import (
	"context"
	"time"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/repository/specification"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/search"

	"github.com/google/uuid"
)

const (
	defaultFeedLimit    = 50
	maxFeedLimit        = 100
	defaultContextAfter = 10
)

type IQueryService interface {
	Feed(ctx context.Context, cursor *time.Time, limit int) (*dto.FeedResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	ContextWindow(ctx context.Context, messageID uuid.UUID, radius int) (*dto.ContextWindowResponse, error)
	Attachments(ctx context.Context, limit, offset int) ([]dto.MessageResponse, error)
	EditHistory(ctx context.Context, messageID uuid.UUID) (*dto.EditHistoryResponse, error)
}

type queryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewQueryService(uowFactory unitofwork.RepositoryFactory) IQueryService {
	return &queryService{uowFactory: uowFactory}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

// Feed returns the newest-first message page before the cursor. Soft-deleted
// and expired messages stay out of the feed; tombstones only show up in the
// thread view.
func (s *queryService) Feed(ctx context.Context, cursor *time.Time, limit int) (*dto.FeedResponse, error) {
	limit = clampLimit(limit)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.NotDeleted{},
		specification.NotExpired{Now: time.Now()},
		specification.WithAuthor{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit + 1},
	}
	if cursor != nil {
		specs = append(specs, specification.CreatedBefore{Cursor: *cursor})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	resp := dto.FeedResponse{}
	if len(messages) > limit {
		messages = messages[:limit]
		resp.HasMore = true
	}
	resp.Messages = dto.NewMessageResponses(messages)
	if resp.HasMore && len(messages) > 0 {
		last := messages[len(messages)-1].CreatedAt
		resp.NextCursor = &last
	}
	return &resp, nil
}

// Search understands filter tokens in the query string (from:<username>,
// kind:<kind>, before:/after:<YYYY-MM-DD>); the remaining text is matched
// against message content.
func (s *queryService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	limit := clampLimit(req.Limit)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	parsed := search.ParseQuery(req.Query)
	filters := []specification.Specification{
		specification.NotDeleted{},
		specification.NotExpired{Now: time.Now()},
	}
	if parsed.Query != "" {
		filters = append(filters, specification.ContentContains{Query: parsed.Query})
	}
	if parsed.Kind != "" {
		filters = append(filters, specification.ByKind{Kind: parsed.Kind})
	}
	if parsed.Before != nil {
		filters = append(filters, specification.CreatedBefore{Cursor: *parsed.Before})
	}
	if parsed.After != nil {
		filters = append(filters, specification.CreatedAfter{Cursor: *parsed.After})
	}
	if parsed.Sender != "" {
		sender, err := uow.UserRepository().FindByUsername(ctx, parsed.Sender)
		if err != nil {
			return nil, err
		}
		if sender == nil {
			// Unknown sender matches nothing.
			return &dto.SearchResponse{Messages: []dto.MessageResponse{}}, nil
		}
		filters = append(filters, specification.ByAuthorID{AuthorID: sender.ID})
	}

	total, err := uow.MessageRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.WithAuthor{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return &dto.SearchResponse{
		Messages: dto.NewMessageResponses(messages),
		Total:    total,
	}, nil
}

// ContextWindow returns radius messages on either side of the target, in
// chronological order, for jump-to-message navigation.
func (s *queryService) ContextWindow(ctx context.Context, messageID uuid.UUID, radius int) (*dto.ContextWindowResponse, error) {
	if radius <= 0 || radius > maxFeedLimit {
		radius = defaultContextAfter
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	target, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.ErrNotFound
	}

	before, err := uow.MessageRepository().FindAll(ctx,
		specification.CreatedBefore{Cursor: target.CreatedAt},
		specification.NotExpired{Now: time.Now()},
		specification.WithAuthor{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: radius},
	)
	if err != nil {
		return nil, err
	}
	// Flip the descending page back to chronological order.
	for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
		before[i], before[j] = before[j], before[i]
	}

	after, err := uow.MessageRepository().FindAll(ctx,
		specification.CreatedAfter{Cursor: target.CreatedAt},
		specification.NotExpired{Now: time.Now()},
		specification.WithAuthor{},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: radius},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ContextWindowResponse{
		Before: dto.NewMessageResponses(before),
		Target: dto.NewMessageResponse(target),
		After:  dto.NewMessageResponses(after),
	}, nil
}

// Attachments lists non-text messages newest first, for a media gallery view.
func (s *queryService) Attachments(ctx context.Context, limit, offset int) ([]dto.MessageResponse, error) {
	limit = clampLimit(limit)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	var all []dto.MessageResponse
	for _, kind := range []string{constant.MessageKindImage, constant.MessageKindFile} {
		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByKind{Kind: kind},
			specification.NotDeleted{},
			specification.NotExpired{Now: time.Now()},
			specification.WithAuthor{},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: limit, Offset: offset},
		)
		if err != nil {
			return nil, err
		}
		all = append(all, dto.NewMessageResponses(messages)...)
	}
	return all, nil
}

func (s *queryService) EditHistory(ctx context.Context, messageID uuid.UUID) (*dto.EditHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperrors.ErrNotFound
	}

	entries, err := uow.EditHistoryRepository().FindAllByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	resp := dto.EditHistoryResponse{MessageID: messageID, Entries: make([]dto.EditHistoryEntry, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, dto.EditHistoryEntry{
			PriorContent: entry.PriorContent,
			EditedAt:     entry.EditedAt,
		})
	}
	return &resp, nil
}
