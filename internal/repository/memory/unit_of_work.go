package memory

import (
	"context"

	"chatsync-be/internal/repository/contract"
	"chatsync-be/internal/repository/unitofwork"
)

// UnitOfWork satisfies the transactional contract over the map store.
// Begin/Commit/Rollback are boundaries only; the map mutations are applied
// immediately, which is sufficient for the unit tests that use this package.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) unitofwork.UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *UnitOfWork) MessageRepository() contract.MessageRepository {
	return NewMessageRepository(u.store)
}

func (u *UnitOfWork) EditHistoryRepository() contract.EditHistoryRepository {
	return NewEditHistoryRepository(u.store)
}

func (u *UnitOfWork) ReactionRepository() contract.ReactionRepository {
	return NewReactionRepository(u.store)
}

func (u *UnitOfWork) MentionRepository() contract.MentionRepository {
	return NewMentionRepository(u.store)
}

func (u *UnitOfWork) BookmarkRepository() contract.BookmarkRepository {
	return NewBookmarkRepository(u.store)
}

func (u *UnitOfWork) ReadReceiptRepository() contract.ReadReceiptRepository {
	return NewReadReceiptRepository(u.store)
}

func (u *UnitOfWork) DeviceRepository() contract.DeviceRepository {
	return NewDeviceRepository(u.store)
}

// RepositoryFactory hands every unit of work the same store.
type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.store)
}
