package unitofwork

import (
	"context"

	"chatsync-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MessageRepository() contract.MessageRepository
	EditHistoryRepository() contract.EditHistoryRepository
	ReactionRepository() contract.ReactionRepository
	MentionRepository() contract.MentionRepository
	BookmarkRepository() contract.BookmarkRepository
	ReadReceiptRepository() contract.ReadReceiptRepository
	DeviceRepository() contract.DeviceRepository
}
