package authz

import (
	"testing"
	"time"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func member() *model.User {
	return &model.User{ID: uuid.New(), Role: constant.RoleMember}
}

func TestCanEdit(t *testing.T) {
	guard := NewGuard()
	author := member()
	other := member()
	now := time.Now()

	fresh := &model.Message{AuthorID: author.ID, CreatedAt: now.Add(-time.Minute)}
	stale := &model.Message{AuthorID: author.ID, CreatedAt: now.Add(-constant.EditWindow - time.Second)}

	assert.NoError(t, guard.CanEdit(author, fresh, now))
	assert.ErrorIs(t, guard.CanEdit(other, fresh, now), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, guard.CanEdit(author, stale, now), apperrors.ErrEditWindowClosed)

	// The window is measured from creation, exactly at the boundary is fine.
	boundary := &model.Message{AuthorID: author.ID, CreatedAt: now.Add(-constant.EditWindow)}
	assert.NoError(t, guard.CanEdit(author, boundary, now))
}

func TestCanDelete(t *testing.T) {
	guard := NewGuard()
	author := member()
	other := member()
	admin := &model.User{ID: uuid.New(), Role: constant.RoleSuperuser}

	message := &model.Message{AuthorID: author.ID}

	assert.NoError(t, guard.CanDelete(author, message))
	assert.NoError(t, guard.CanDelete(admin, message))
	assert.ErrorIs(t, guard.CanDelete(other, message), apperrors.ErrUnauthorized)
}

func TestCanRestore_AuthorOnlyEvenForSuperuser(t *testing.T) {
	guard := NewGuard()
	author := member()
	admin := &model.User{ID: uuid.New(), Role: constant.RoleSuperuser}

	message := &model.Message{AuthorID: author.ID, IsDeleted: true}

	assert.NoError(t, guard.CanRestore(author, message))
	assert.ErrorIs(t, guard.CanRestore(admin, message), apperrors.ErrUnauthorized)
}

func TestCanAckMention(t *testing.T) {
	guard := NewGuard()
	mentioned := member()
	other := member()

	mention := &model.Mention{UserID: mentioned.ID}

	assert.NoError(t, guard.CanAckMention(mentioned, mention))
	assert.ErrorIs(t, guard.CanAckMention(other, mention), apperrors.ErrUnauthorized)
}

func TestCanRevokeSession(t *testing.T) {
	guard := NewGuard()
	owner := member()
	other := member()

	device := &model.Device{UserID: owner.ID, SessionID: uuid.New()}

	assert.NoError(t, guard.CanRevokeSession(owner, device))
	assert.ErrorIs(t, guard.CanRevokeSession(other, device), apperrors.ErrUnauthorized)
}
