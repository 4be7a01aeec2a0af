package implementation

import (
	"context"

	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadReceiptRepositoryImpl struct {
	db *gorm.DB
}

func NewReadReceiptRepository(db *gorm.DB) contract.ReadReceiptRepository {
	return &ReadReceiptRepositoryImpl{db: db}
}

func (r *ReadReceiptRepositoryImpl) Upsert(ctx context.Context, receipt *model.ReadReceipt) error {
	// Conflict on the (message_id, user_id) unique pair is ignored so the
	// durable record stays single-row no matter how often a read is reported.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(receipt).Error
}

func (r *ReadReceiptRepositoryImpl) FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.ReadReceipt, error) {
	var receipts []*model.ReadReceipt
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}
