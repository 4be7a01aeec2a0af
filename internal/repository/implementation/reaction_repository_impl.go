package implementation

import (
	"context"
	"errors"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepositoryImpl struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) contract.ReactionRepository {
	return &ReactionRepositoryImpl{db: db}
}

func (r *ReactionRepositoryImpl) Create(ctx context.Context, reaction *model.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *ReactionRepositoryImpl) FindByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.db.WithContext(ctx).
		First(&reaction, "message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *ReactionRepositoryImpl) DeleteByTriple(ctx context.Context, messageID, userID uuid.UUID, emoji string) error {
	return r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&model.Reaction{}).Error
}

func (r *ReactionRepositoryImpl) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.Reaction, error) {
	var reactions []*model.Reaction
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}
