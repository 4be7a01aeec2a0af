package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/internal/service"
	"chatsync-be/pkg/events"

	"github.com/go-playground/validator/v10"
)

// Inbound event names.
const (
	EventMessageSend    = "message.send"
	EventMessageEdit    = "message.edit"
	EventMessageDelete  = "message.delete"
	EventMessageRestore = "message.restore"
	EventPinToggle      = "pin.toggle"
	EventReactionToggle = "reaction.toggle"
	EventReceiptMark    = "receipt.mark"
	EventMentionAck     = "mention.ack"
	EventTypingStart    = "typing.start"
)

// Router decodes inbound frames and drives the services. Every failure goes
// back to the offending session only; peers never see another client's
// validation errors.
type Router struct {
	messageService  service.IMessageService
	reactionService service.IReactionService
	pinService      service.IPinService
	mentionService  service.IMentionService
	receiptService  service.IReceiptService
	deviceService   service.IDeviceService
	uowFactory      unitofwork.RepositoryFactory
	publisher       events.Publisher
	validate        *validator.Validate
	logger          logger.ILogger
}

func NewRouter(
	messageService service.IMessageService,
	reactionService service.IReactionService,
	pinService service.IPinService,
	mentionService service.IMentionService,
	receiptService service.IReceiptService,
	deviceService service.IDeviceService,
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
) *Router {
	return &Router{
		messageService:  messageService,
		reactionService: reactionService,
		pinService:      pinService,
		mentionService:  mentionService,
		receiptService:  receiptService,
		deviceService:   deviceService,
		uowFactory:      uowFactory,
		publisher:       publisher,
		validate:        validator.New(),
		logger:          log,
	}
}

func (r *Router) Handle(client *Client, raw []byte) {
	var envelope dto.InboundEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		r.sendError(client, "", "malformed frame")
		return
	}

	ctx := context.Background()

	// Any inbound frame proves the session is alive.
	if err := r.deviceService.Heartbeat(ctx, client.SessionID); err != nil {
		r.logger.Warn("router", "heartbeat failed", map[string]interface{}{"error": err.Error()})
	}

	var err error
	switch envelope.Type {
	case EventMessageSend:
		err = r.handleSend(ctx, client, envelope.Data)
	case EventMessageEdit:
		err = r.handleEdit(ctx, client, envelope.Data)
	case EventMessageDelete:
		err = r.handleDelete(ctx, client, envelope.Data)
	case EventMessageRestore:
		err = r.handleRestore(ctx, client, envelope.Data)
	case EventPinToggle:
		err = r.handlePinToggle(ctx, client, envelope.Data)
	case EventReactionToggle:
		err = r.handleReactionToggle(ctx, client, envelope.Data)
	case EventReceiptMark:
		err = r.handleReceiptMark(ctx, client, envelope.Data)
	case EventMentionAck:
		err = r.handleMentionAck(ctx, client, envelope.Data)
	case EventTypingStart:
		err = r.handleTypingStart(ctx, client)
	default:
		r.sendError(client, envelope.Type, "unknown event")
		return
	}

	if err != nil {
		r.sendError(client, envelope.Type, reasonFor(err))
	}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "not allowed"
	case errors.Is(err, apperrors.ErrEditWindowClosed):
		return "edit window has closed"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not found"
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid content"
	default:
		return "internal error"
	}
}

func (r *Router) sendError(client *Client, event, reason string) {
	delta := events.NewDelta(events.ErrorNotice, dto.ErrorNoticePayload{Event: event, Reason: reason}, events.ToSession(client.SessionID))
	payload, err := json.Marshal(outboundFrame{Type: delta.Type, Data: delta.Data, OccurredAt: delta.OccurredAt})
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

func (r *Router) decode(data json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.ErrValidation
	}
	if err := r.validate.Struct(out); err != nil {
		return apperrors.ErrValidation
	}
	return nil
}

func (r *Router) handleSend(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.SendMessageRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	_, err := r.messageService.Send(ctx, client.UserID, &req)
	return err
}

func (r *Router) handleEdit(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.EditMessageRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	_, err := r.messageService.Edit(ctx, client.UserID, &req)
	return err
}

func (r *Router) handleDelete(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.MessageIDRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.messageService.Delete(ctx, client.UserID, req.MessageID)
}

func (r *Router) handleRestore(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.MessageIDRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.messageService.Restore(ctx, client.UserID, req.MessageID)
}

func (r *Router) handlePinToggle(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.MessageIDRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.pinService.Toggle(ctx, client.UserID, req.MessageID)
}

func (r *Router) handleReactionToggle(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.ReactionToggleRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.reactionService.Toggle(ctx, client.UserID, &req)
}

func (r *Router) handleReceiptMark(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.ReceiptMarkRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.receiptService.Mark(ctx, client.UserID, req.MessageID)
}

func (r *Router) handleMentionAck(ctx context.Context, client *Client, data json.RawMessage) error {
	var req dto.MentionAckRequest
	if err := r.decode(data, &req); err != nil {
		return err
	}
	return r.mentionService.Ack(ctx, client.UserID, req.MentionID)
}

func (r *Router) handleTypingStart(ctx context.Context, client *Client) error {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByID(ctx, client.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	payload := dto.TypingPayload{UserID: user.ID, DisplayName: user.DisplayName}
	return r.publisher.Publish(events.NewDelta(events.Typing, payload, events.Broadcast()))
}

// outboundFrame is the wire shape of every server-to-client frame. The
// audience never leaves the server.
type outboundFrame struct {
	Type       string      `json:"type"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}
