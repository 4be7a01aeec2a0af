package service

import (
	"context"
	"testing"

	"chatsync-be/internal/constant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkToggle_OnOff(t *testing.T) {
	env := newTestEnv()
	svc := NewBookmarkService(env.factory)
	alice := env.createUser(t, "alice", constant.RoleMember)
	message := env.createMessage(t, alice, "keep this")

	bookmarked, err := svc.Toggle(context.Background(), alice.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = svc.Toggle(context.Background(), alice.ID, message.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	list, err := svc.List(context.Background(), alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Bookmarks)
	assert.Zero(t, list.Total)
}

func TestBookmarkToggle_MissingTargetIsNoOp(t *testing.T) {
	env := newTestEnv()
	svc := NewBookmarkService(env.factory)
	alice := env.createUser(t, "alice", constant.RoleMember)

	bookmarked, err := svc.Toggle(context.Background(), alice.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, bookmarked)
}

func TestBookmarkList_PrivatePerUser(t *testing.T) {
	env := newTestEnv()
	svc := NewBookmarkService(env.factory)
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	message := env.createMessage(t, alice, "shared message")

	_, err := svc.Toggle(context.Background(), alice.ID, message.ID)
	require.NoError(t, err)

	aliceList, err := svc.List(context.Background(), alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, aliceList.Bookmarks, 1)
	require.NotNil(t, aliceList.Bookmarks[0].Message)
	assert.Equal(t, message.ID, aliceList.Bookmarks[0].Message.ID)

	bobList, err := svc.List(context.Background(), bob.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, bobList.Bookmarks)
}
