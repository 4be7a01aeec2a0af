package events

import (
	"time"

	"github.com/google/uuid"
)

// Outbound realtime event types. Clients switch on these to patch their
// local projection of the conversation.
const (
	MessageNew          = "message.new"
	MessageUpdated      = "message.updated"
	MessageDeleted      = "message.deleted"
	MessageRestored     = "message.restored"
	MessageExpiredBatch = "message.expired_batch"
	ReactionAdded       = "reaction.added"
	ReactionRemoved     = "reaction.removed"
	PinChanged          = "pin.changed"
	ReceiptBatch        = "receipt.batch"
	MentionRead         = "mention.read"
	MentionReadSelf     = "mention.read_self"
	BookmarkRestored    = "bookmark.restored"
	PresenceChanged     = "presence.changed"
	ForceLogout         = "session.force_logout"
	Typing              = "typing"
	ErrorNotice         = "error"
)

// Audience selects who receives an outbound event: every session in the
// shared channel, every session of one user, or one exact session.
type Audience struct {
	All       bool       `json:"all,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

func Broadcast() Audience {
	return Audience{All: true}
}

func ToUser(userID uuid.UUID) Audience {
	return Audience{UserID: &userID}
}

func ToSession(sessionID uuid.UUID) Audience {
	return Audience{SessionID: &sessionID}
}

// Delta is one outbound state change, addressed and ready for fan-out.
type Delta struct {
	Type       string      `json:"type"`
	Data       interface{} `json:"data"`
	Audience   Audience    `json:"audience"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewDelta(eventType string, data interface{}, audience Audience) Delta {
	return Delta{
		Type:       eventType,
		Data:       data,
		Audience:   audience,
		OccurredAt: time.Now(),
	}
}

// Publisher is implemented by the realtime event bus. Services publish
// committed state deltas through it; they never talk to the transport
// directly.
type Publisher interface {
	Publish(delta Delta) error
}
