package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message is the central entity of the conversation. Content is nullable for
// attachment-only messages. ParentID forms the reply tree; deleting a parent
// sets the child's ParentID to NULL so the child survives with a broken quote.
type Message struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
	Content   *string    `gorm:"type:text" json:"content,omitempty"`
	Kind      string     `gorm:"type:varchar(20);not null;default:'text'" json:"kind"`
	FileURL   *string    `gorm:"type:text" json:"file_url,omitempty"`
	FileName  *string    `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	IsDeleted bool       `gorm:"default:false;index" json:"is_deleted"`
	IsPinned  bool       `gorm:"default:false" json:"is_pinned"`
	// WasPinned remembers the pin state across a delete/restore cycle. It is
	// only meaningful while IsDeleted is true and is consumed on restore.
	WasPinned    bool           `gorm:"default:false" json:"-"`
	ExpiresAt    *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	ParentID     *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent       *Message       `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
	LinkMetadata datatypes.JSON `gorm:"type:jsonb" json:"link_metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageEditHistory is an immutable snapshot of the content a message had
// before one edit. Rows cascade away with their message.
type MessageEditHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MessageID    uuid.UUID `gorm:"type:uuid;not null;index" json:"message_id"`
	Message      *Message  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	PriorContent string    `gorm:"type:text;not null" json:"prior_content"`
	EditedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"edited_at"`
}

func (MessageEditHistory) TableName() string {
	return "message_edit_histories"
}
