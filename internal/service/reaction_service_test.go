package service

import (
	"context"
	"testing"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionToggle_DoubleToggleReturnsToAbsence(t *testing.T) {
	env := newTestEnv()
	svc := NewReactionService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	message := env.createMessage(t, alice, "react to me")

	req := &dto.ReactionToggleRequest{MessageID: message.ID, Emoji: "👍"}

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, req))
	uow := env.factory.NewUnitOfWork(context.Background())
	reaction, err := uow.ReactionRepository().FindByTriple(context.Background(), message.ID, alice.ID, "👍")
	require.NoError(t, err)
	require.NotNil(t, reaction)

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, req))
	reaction, err = uow.ReactionRepository().FindByTriple(context.Background(), message.ID, alice.ID, "👍")
	require.NoError(t, err)
	assert.Nil(t, reaction)

	// The addition frame carries the row and the reactor's display identity;
	// removal only carries the triple.
	added := env.pub.byType(events.ReactionAdded)
	require.Len(t, added, 1)
	addedPayload := added[0].Data.(dto.ReactionAddedPayload)
	assert.Equal(t, message.ID, addedPayload.MessageID)
	assert.Equal(t, alice.ID, addedPayload.UserID)
	assert.Equal(t, "👍", addedPayload.Emoji)
	assert.NotEqual(t, uuid.Nil, addedPayload.ReactionID)
	assert.Equal(t, alice.DisplayName, addedPayload.DisplayName)

	removed := env.pub.byType(events.ReactionRemoved)
	require.Len(t, removed, 1)
	removedPayload := removed[0].Data.(dto.ReactionPayload)
	assert.Equal(t, "👍", removedPayload.Emoji)
}

func TestReactionToggle_DistinctEmojisCoexist(t *testing.T) {
	env := newTestEnv()
	svc := NewReactionService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	message := env.createMessage(t, alice, "react to me")

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, &dto.ReactionToggleRequest{MessageID: message.ID, Emoji: "👍"}))
	require.NoError(t, svc.Toggle(context.Background(), alice.ID, &dto.ReactionToggleRequest{MessageID: message.ID, Emoji: "🎉"}))

	uow := env.factory.NewUnitOfWork(context.Background())
	reactions, err := uow.ReactionRepository().FindAllByMessage(context.Background(), message.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 2)
}

func TestReactionToggle_MissingTargetIsNoOp(t *testing.T) {
	env := newTestEnv()
	svc := NewReactionService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, &dto.ReactionToggleRequest{MessageID: uuid.New(), Emoji: "👍"}))
	assert.Empty(t, env.pub.byType(events.ReactionAdded))
}
