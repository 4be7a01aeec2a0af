package model

import (
	"time"

	"github.com/google/uuid"
)

// ReadReceipt durably records that a user has seen a message. It is distinct
// from the in-memory buffer that batches the realtime broadcast of the same
// fact.
type ReadReceipt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipts_pair,priority:1" json:"message_id"`
	Message   *Message  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipts_pair,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ReadReceipt) TableName() string {
	return "read_receipts"
}
