package contract

import (
	"context"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type ReadReceiptRepository interface {
	// Upsert records the (user, message) receipt; a duplicate pair is a no-op
	// so repeated reads keep exactly one durable row.
	Upsert(ctx context.Context, receipt *model.ReadReceipt) error
	FindAllByMessage(ctx context.Context, messageID uuid.UUID) ([]*model.ReadReceipt, error)
}
