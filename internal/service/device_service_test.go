package service

import (
	"context"
	"testing"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRegister_PresenceOnlineOnce(t *testing.T) {
	env := newTestEnv()
	svc := NewDeviceService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)

	firstSession := uuid.New()
	secondSession := uuid.New()
	require.NoError(t, svc.Register(context.Background(), alice.ID, firstSession, "laptop"))
	require.NoError(t, svc.Register(context.Background(), alice.ID, secondSession, "phone"))

	// A second device does not re-announce an already-online user.
	notices := env.pub.byType(events.PresenceChanged)
	require.Len(t, notices, 1)
	assert.True(t, svc.IsOnline(alice.ID))

	devices, err := svc.List(context.Background(), alice.ID, firstSession)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.True(t, devices[0].Current)
	assert.False(t, devices[1].Current)
}

func TestDeviceUnregister_OfflineAfterLastSession(t *testing.T) {
	env := newTestEnv()
	svc := NewDeviceService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, svc.Register(context.Background(), alice.ID, first, "laptop"))
	require.NoError(t, svc.Register(context.Background(), alice.ID, second, "phone"))
	env.pub.reset()

	require.NoError(t, svc.Unregister(context.Background(), first))
	assert.Empty(t, env.pub.byType(events.PresenceChanged))
	assert.True(t, svc.IsOnline(alice.ID))

	require.NoError(t, svc.Unregister(context.Background(), second))
	notices := env.pub.byType(events.PresenceChanged)
	require.Len(t, notices, 1)
	assert.False(t, svc.IsOnline(alice.ID))
}

func TestDeviceRevoke_OwnSessionsOnly(t *testing.T) {
	env := newTestEnv()
	svc := NewDeviceService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	mallory := env.createUser(t, "mallory", constant.RoleMember)

	session := uuid.New()
	require.NoError(t, svc.Register(context.Background(), alice.ID, session, "laptop"))
	env.pub.reset()

	assert.ErrorIs(t, svc.Revoke(context.Background(), mallory.ID, session), apperrors.ErrUnauthorized)

	require.NoError(t, svc.Revoke(context.Background(), alice.ID, session))
	logouts := env.pub.byType(events.ForceLogout)
	require.Len(t, logouts, 1)
	require.NotNil(t, logouts[0].Audience.SessionID)
	assert.Equal(t, session, *logouts[0].Audience.SessionID)

	devices, err := svc.List(context.Background(), alice.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestDeviceRevoke_MissingSession(t *testing.T) {
	env := newTestEnv()
	svc := NewDeviceService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)

	assert.ErrorIs(t, svc.Revoke(context.Background(), alice.ID, uuid.New()), apperrors.ErrNotFound)
}
