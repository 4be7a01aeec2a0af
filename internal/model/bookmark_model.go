package model

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a user-private marker on a message. It has no side effects on
// the message itself.
type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_pair,priority:1" json:"message_id"`
	Message   *Message  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"message,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_pair,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
