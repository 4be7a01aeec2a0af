package authz

import (
	"time"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/apperrors"
)

// Guard centralizes every permission decision so the services and both
// transports share one ruleset.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// CanEdit allows only the author, and only while the edit window is open.
// The window is measured from creation, not from the previous edit.
func (g *Guard) CanEdit(actor *model.User, message *model.Message, now time.Time) error {
	if actor.ID != message.AuthorID {
		return apperrors.ErrUnauthorized
	}
	if now.Sub(message.CreatedAt) > constant.EditWindow {
		return apperrors.ErrEditWindowClosed
	}
	return nil
}

// CanDelete allows the author or any superuser.
func (g *Guard) CanDelete(actor *model.User, message *model.Message) error {
	if actor.ID == message.AuthorID || actor.Role == constant.RoleSuperuser {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// CanRestore allows only the author. A superuser can delete someone else's
// message but cannot resurrect it on their behalf.
func (g *Guard) CanRestore(actor *model.User, message *model.Message) error {
	if actor.ID != message.AuthorID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// CanAckMention allows only the mentioned user to mark their mention read.
func (g *Guard) CanAckMention(actor *model.User, mention *model.Mention) error {
	if actor.ID != mention.UserID {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// CanRevokeSession allows a user to force-logout their own sessions only.
func (g *Guard) CanRevokeSession(actor *model.User, device *model.Device) error {
	if actor.ID != device.UserID {
		return apperrors.ErrUnauthorized
	}
	return nil
}
