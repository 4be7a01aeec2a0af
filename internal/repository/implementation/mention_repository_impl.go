package implementation

import (
	"context"
	"errors"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentionRepositoryImpl struct {
	db *gorm.DB
}

func NewMentionRepository(db *gorm.DB) contract.MentionRepository {
	return &MentionRepositoryImpl{db: db}
}

func (r *MentionRepositoryImpl) CreateBatch(ctx context.Context, mentions []*model.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(mentions).Error
}

func (r *MentionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Mention, error) {
	var mention model.Mention
	if err := r.db.WithContext(ctx).First(&mention, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mention, nil
}

func (r *MentionRepositoryImpl) Update(ctx context.Context, mention *model.Mention) error {
	return r.db.WithContext(ctx).Save(mention).Error
}

func (r *MentionRepositoryImpl) ResetByMessageID(ctx context.Context, messageID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Mention{}).
		Where("message_id = ?", messageID).
		Updates(map[string]interface{}{"is_read": false, "read_at": nil}).Error
}

func (r *MentionRepositoryImpl) FindByMessageID(ctx context.Context, messageID uuid.UUID) ([]*model.Mention, error) {
	var mentions []*model.Mention
	if err := r.db.WithContext(ctx).Where("message_id = ?", messageID).Find(&mentions).Error; err != nil {
		return nil, err
	}
	return mentions, nil
}

func (r *MentionRepositoryImpl) FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*model.Mention, error) {
	var mentions []*model.Mention
	err := r.db.WithContext(ctx).
		Preload("Message").
		Preload("Message.Author").
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&mentions).Error
	if err != nil {
		return nil, err
	}
	return mentions, nil
}
