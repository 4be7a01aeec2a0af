package dto

import (
	"time"

	"github.com/google/uuid"
)

type DeviceResponse struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	Description  string    `json:"description"`
	ConnectedAt  time.Time `json:"connected_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	Current      bool      `json:"current"`
}

type RevokeSessionRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Online bool      `json:"online"`
}

type ForceLogoutPayload struct {
	SessionID uuid.UUID `json:"session_id"`
	Reason    string    `json:"reason"`
}
