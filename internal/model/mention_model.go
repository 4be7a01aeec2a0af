package model

import (
	"time"

	"github.com/google/uuid"
)

// Mention is a durable (user, message) addressing record with its own
// read/unread lifecycle. IsRead flips false->true on acknowledgement and
// true->false only when the owning message is edited.
type Mention struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MessageID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_mentions_pair,priority:1" json:"message_id"`
	Message   *Message   `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"message,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_mentions_pair,priority:2;index:idx_mentions_user_unread" json:"user_id"`
	IsRead    bool       `gorm:"default:false;index:idx_mentions_user_unread" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Mention) TableName() string {
	return "mentions"
}
