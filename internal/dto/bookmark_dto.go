package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookmarkToggleRequest struct {
	MessageID uuid.UUID `json:"message_id" validate:"required"`
}

type BookmarkResponse struct {
	ID        uuid.UUID        `json:"id"`
	MessageID uuid.UUID        `json:"message_id"`
	Message   *MessageResponse `json:"message,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type BookmarkListResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks"`
	Total     int64              `json:"total"`
}

// BookmarkRestoredPayload notifies a user that a message they had bookmarked
// came back from soft deletion.
type BookmarkRestoredPayload struct {
	MessageID uuid.UUID `json:"message_id"`
}
