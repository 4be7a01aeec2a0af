package implementation

import (
	"context"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EditHistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewEditHistoryRepository(db *gorm.DB) contract.EditHistoryRepository {
	return &EditHistoryRepositoryImpl{db: db}
}

func (r *EditHistoryRepositoryImpl) Create(ctx context.Context, entry *model.MessageEditHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *EditHistoryRepositoryImpl) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.MessageEditHistory, error) {
	var entries []*model.MessageEditHistory
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("edited_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
