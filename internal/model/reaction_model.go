package model

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is one (user, message, emoji) triple. The unique index makes the
// triple the unit the toggler operates on: a row either exists or it does not.
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_triple,priority:1" json:"message_id"`
	Message   *Message  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_triple,priority:2" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Emoji     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reactions_triple,priority:3" json:"emoji"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}
