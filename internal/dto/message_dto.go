package dto

import (
	"time"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content    *string    `json:"content" validate:"omitempty,max=8000"`
	Kind       string     `json:"kind" validate:"required,oneof=text image file"`
	FileURL    *string    `json:"file_url" validate:"omitempty,url"`
	FileName   *string    `json:"file_name" validate:"omitempty,max=255"`
	ParentID   *uuid.UUID `json:"parent_id"`
	TTLSeconds *int       `json:"ttl_seconds" validate:"omitempty,min=5,max=604800"`
}

type EditMessageRequest struct {
	MessageID uuid.UUID `json:"message_id" validate:"required"`
	Content   string    `json:"content" validate:"required,max=8000"`
}

type MessageIDRequest struct {
	MessageID uuid.UUID `json:"message_id" validate:"required"`
}

type ReactionToggleRequest struct {
	MessageID uuid.UUID `json:"message_id" validate:"required"`
	Emoji     string    `json:"emoji" validate:"required,max=32"`
}

type MentionAckRequest struct {
	MentionID uuid.UUID `json:"mention_id" validate:"required"`
}

type ReceiptMarkRequest struct {
	MessageID uuid.UUID `json:"message_id" validate:"required"`
}

type AuthorResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

type MessageResponse struct {
	ID           uuid.UUID       `json:"id"`
	Author       *AuthorResponse `json:"author,omitempty"`
	AuthorID     uuid.UUID       `json:"author_id"`
	Content      *string         `json:"content,omitempty"`
	Kind         string          `json:"kind"`
	FileURL      *string         `json:"file_url,omitempty"`
	FileName     *string         `json:"file_name,omitempty"`
	IsDeleted    bool            `json:"is_deleted"`
	IsPinned     bool            `json:"is_pinned"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	ParentID     *uuid.UUID      `json:"parent_id,omitempty"`
	LinkMetadata interface{}     `json:"link_metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func NewMessageResponse(message *model.Message) MessageResponse {
	resp := MessageResponse{
		ID:        message.ID,
		AuthorID:  message.AuthorID,
		Content:   message.Content,
		Kind:      message.Kind,
		FileURL:   message.FileURL,
		FileName:  message.FileName,
		IsDeleted: message.IsDeleted,
		IsPinned:  message.IsPinned,
		ExpiresAt: message.ExpiresAt,
		ParentID:  message.ParentID,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
	if len(message.LinkMetadata) > 0 {
		resp.LinkMetadata = message.LinkMetadata
	}
	if message.Author != nil {
		resp.Author = &AuthorResponse{
			ID:          message.Author.ID,
			Username:    message.Author.Username,
			DisplayName: message.Author.DisplayName,
			AvatarURL:   message.Author.AvatarURL,
		}
	}
	// Deleted messages keep their row but never leak content or attachments.
	if message.IsDeleted {
		resp.Content = nil
		resp.FileURL = nil
		resp.FileName = nil
		resp.LinkMetadata = nil
	}
	return resp
}

func NewMessageResponses(messages []*model.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewMessageResponse(message))
	}
	return responses
}

type FeedResponse struct {
	Messages   []MessageResponse `json:"messages"`
	NextCursor *time.Time        `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type SearchRequest struct {
	Query  string `json:"query" validate:"required,min=1,max=200"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

type SearchResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
}

type ThreadResponse struct {
	Root    MessageResponse   `json:"root"`
	Replies []MessageResponse `json:"replies"`
	Depth   int               `json:"depth"`
}

type ContextWindowResponse struct {
	Before []MessageResponse `json:"before"`
	Target MessageResponse   `json:"target"`
	After  []MessageResponse `json:"after"`
}

type EditHistoryResponse struct {
	MessageID uuid.UUID          `json:"message_id"`
	Entries   []EditHistoryEntry `json:"entries"`
}

type EditHistoryEntry struct {
	PriorContent string    `json:"prior_content"`
	EditedAt     time.Time `json:"edited_at"`
}

type ExpiredBatchPayload struct {
	MessageIDs []uuid.UUID `json:"message_ids"`
	ExpiredAt  time.Time   `json:"expired_at"`
}

type PinChangedPayload struct {
	// Pinned is nil when the channel has no pinned message anymore.
	Pinned   *MessageResponse `json:"pinned"`
	ActorID  uuid.UUID        `json:"actor_id"`
	Previous *uuid.UUID       `json:"previous,omitempty"`
}

type MessageDeletedPayload struct {
	MessageID uuid.UUID `json:"message_id"`
}

type ReactionPayload struct {
	MessageID uuid.UUID `json:"message_id"`
	UserID    uuid.UUID `json:"user_id"`
	Emoji     string    `json:"emoji"`
}

// ReactionAddedPayload carries the created row plus enough reactor identity
// for clients to render it without a user lookup.
type ReactionAddedPayload struct {
	ReactionID  uuid.UUID `json:"reaction_id"`
	MessageID   uuid.UUID `json:"message_id"`
	UserID      uuid.UUID `json:"user_id"`
	Emoji       string    `json:"emoji"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

type ReceiptBatchPayload struct {
	Receipts []ReceiptEntry `json:"receipts"`
}

type ReceiptEntry struct {
	MessageID uuid.UUID   `json:"message_id"`
	UserIDs   []uuid.UUID `json:"user_ids"`
}

type MentionPayload struct {
	MentionID uuid.UUID  `json:"mention_id"`
	MessageID uuid.UUID  `json:"message_id"`
	UserID    uuid.UUID  `json:"user_id"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

type MentionResponse struct {
	ID        uuid.UUID        `json:"id"`
	MessageID uuid.UUID        `json:"message_id"`
	Message   *MessageResponse `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type TypingPayload struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
}
