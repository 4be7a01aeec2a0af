package service

import (
	"context"
	"testing"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/pkg/apperrors"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionAck_FlowAndIdempotence(t *testing.T) {
	env := newTestEnv()
	messageSvc := env.messageService()
	mentionSvc := NewMentionService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)

	sent, err := messageSvc.Send(context.Background(), alice.ID, &dto.SendMessageRequest{
		Content: strPtr("ping @bob"),
		Kind:    constant.MessageKindText,
	})
	require.NoError(t, err)
	env.pub.reset()

	uow := env.factory.NewUnitOfWork(context.Background())
	mentions, err := uow.MentionRepository().FindByMessageID(context.Background(), sent.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	mentionID := mentions[0].ID

	require.NoError(t, mentionSvc.Ack(context.Background(), bob.ID, mentionID))

	stored, err := uow.MentionRepository().FindByID(context.Background(), mentionID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)

	// The read mark goes to the message author only, plus a self-directed
	// copy for the reader's other sessions.
	readNotices := env.pub.byType(events.MentionRead)
	require.Len(t, readNotices, 1)
	assert.False(t, readNotices[0].Audience.All)
	require.NotNil(t, readNotices[0].Audience.UserID)
	assert.Equal(t, alice.ID, *readNotices[0].Audience.UserID)
	selfNotices := env.pub.byType(events.MentionReadSelf)
	require.Len(t, selfNotices, 1)
	require.NotNil(t, selfNotices[0].Audience.UserID)
	assert.Equal(t, bob.ID, *selfNotices[0].Audience.UserID)

	// Acknowledging again changes nothing and emits nothing.
	env.pub.reset()
	require.NoError(t, mentionSvc.Ack(context.Background(), bob.ID, mentionID))
	assert.Empty(t, env.pub.byType(events.MentionRead))
}

func TestMentionAck_OnlyMentionedUser(t *testing.T) {
	env := newTestEnv()
	messageSvc := env.messageService()
	mentionSvc := NewMentionService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	env.createUser(t, "bob", constant.RoleMember)
	mallory := env.createUser(t, "mallory", constant.RoleMember)

	sent, err := messageSvc.Send(context.Background(), alice.ID, &dto.SendMessageRequest{
		Content: strPtr("ping @bob"),
		Kind:    constant.MessageKindText,
	})
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(context.Background())
	mentions, err := uow.MentionRepository().FindByMessageID(context.Background(), sent.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)

	assert.ErrorIs(t, mentionSvc.Ack(context.Background(), mallory.ID, mentions[0].ID), apperrors.ErrUnauthorized)
}

func TestMentionAck_MissingMentionIsNoOp(t *testing.T) {
	env := newTestEnv()
	mentionSvc := NewMentionService(env.factory, env.pub, env.guard, nopLogger{})
	bob := env.createUser(t, "bob", constant.RoleMember)

	require.NoError(t, mentionSvc.Ack(context.Background(), bob.ID, uuid.New()))
	assert.Empty(t, env.pub.byType(events.MentionRead))
}

func TestMentionUnread_ListsOnlyUnread(t *testing.T) {
	env := newTestEnv()
	messageSvc := env.messageService()
	mentionSvc := NewMentionService(env.factory, env.pub, env.guard, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)

	first, err := messageSvc.Send(context.Background(), alice.ID, &dto.SendMessageRequest{
		Content: strPtr("one @bob"),
		Kind:    constant.MessageKindText,
	})
	require.NoError(t, err)
	_, err = messageSvc.Send(context.Background(), alice.ID, &dto.SendMessageRequest{
		Content: strPtr("two @bob"),
		Kind:    constant.MessageKindText,
	})
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(context.Background())
	mentions, err := uow.MentionRepository().FindByMessageID(context.Background(), first.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	require.NoError(t, mentionSvc.Ack(context.Background(), bob.ID, mentions[0].ID))

	unread, err := mentionSvc.Unread(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.NotEqual(t, first.ID, unread[0].MessageID)
}
