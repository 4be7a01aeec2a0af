package model

import (
	"time"

	"github.com/google/uuid"
)

// Device is one live websocket session. Rows are ephemeral: created on
// connect, deleted on disconnect, so the table always mirrors the set of
// open connections.
type Device struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	Description  string    `gorm:"type:text" json:"description"`
	ConnectedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"connected_at"`
	LastActiveAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"last_active_at"`
}

func (Device) TableName() string {
	return "devices"
}
