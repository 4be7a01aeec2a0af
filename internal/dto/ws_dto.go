package dto

import "encoding/json"

// InboundEnvelope is the wire shape of every client-to-server frame. Data is
// decoded per event type by the websocket router.
type InboundEnvelope struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data"`
}

// ErrorNoticePayload goes back to the offending session only.
type ErrorNoticePayload struct {
	Event  string `json:"event"`
	Reason string `json:"reason"`
}
