package service

import (
	"context"
	"sync"
	"testing"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/dto"
	"chatsync-be/internal/model"
	"chatsync-be/internal/repository/specification"
	"chatsync-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinToggle_MutualExclusion(t *testing.T) {
	env := newTestEnv()
	svc := NewPinService(env.factory, env.pub, env.pins, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	first := env.createMessage(t, alice, "first")
	second := env.createMessage(t, alice, "second")

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, first.ID))
	assert.True(t, env.getMessage(t, first.ID).IsPinned)

	// Pinning the second displaces the first.
	require.NoError(t, svc.Toggle(context.Background(), alice.ID, second.ID))
	assert.False(t, env.getMessage(t, first.ID).IsPinned)
	assert.True(t, env.getMessage(t, second.ID).IsPinned)

	changes := env.pub.byType(events.PinChanged)
	require.Len(t, changes, 2)
	payload := changes[1].Data.(dto.PinChangedPayload)
	require.NotNil(t, payload.Pinned)
	assert.Equal(t, second.ID, payload.Pinned.ID)
	require.NotNil(t, payload.Previous)
	assert.Equal(t, first.ID, *payload.Previous)
}

func TestPinToggle_UnpinsOnSecondToggle(t *testing.T) {
	env := newTestEnv()
	svc := NewPinService(env.factory, env.pub, env.pins, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	message := env.createMessage(t, alice, "pin me")

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, message.ID))
	require.NoError(t, svc.Toggle(context.Background(), alice.ID, message.ID))
	assert.False(t, env.getMessage(t, message.ID).IsPinned)

	changes := env.pub.byType(events.PinChanged)
	require.Len(t, changes, 2)
	assert.Nil(t, changes[1].Data.(dto.PinChangedPayload).Pinned)
}

func TestPinToggle_DeletedTargetIsNoOp(t *testing.T) {
	env := newTestEnv()
	svc := NewPinService(env.factory, env.pub, env.pins, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	message := env.createMessage(t, alice, "gone")
	require.NoError(t, NewMessageService(env.factory, env.pub, env.guard, nil, nil, env.pins, nopLogger{}).Delete(context.Background(), alice.ID, message.ID))
	env.pub.reset()

	require.NoError(t, svc.Toggle(context.Background(), alice.ID, message.ID))
	assert.Empty(t, env.pub.byType(events.PinChanged))
}

func TestPinToggle_ConcurrentTogglesKeepAtMostOnePin(t *testing.T) {
	env := newTestEnv()
	svc := NewPinService(env.factory, env.pub, env.pins, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	first := env.createMessage(t, alice, "first")
	second := env.createMessage(t, alice, "second")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		target := first.ID
		if i%2 == 0 {
			target = second.ID
		}
		go func() {
			defer wg.Done()
			_ = svc.Toggle(context.Background(), alice.ID, target)
		}()
	}
	wg.Wait()

	uow := env.factory.NewUnitOfWork(context.Background())
	pinned, err := uow.MessageRepository().FindAll(context.Background(), specification.Pinned{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(pinned), 1)
}

func TestPinToggle_SerializedWithRestoreRePin(t *testing.T) {
	env := newTestEnv()
	svc := NewPinService(env.factory, env.pub, env.pins, nopLogger{})
	messageSvc := env.messageService()
	alice := env.createUser(t, "alice", constant.RoleMember)
	// A deleted, formerly pinned message; restoring it re-pins.
	buried := env.createMessage(t, alice, "buried", func(m *model.Message) {
		m.IsDeleted = true
		m.WasPinned = true
	})
	rival := env.createMessage(t, alice, "rival")

	// The restore's clear-then-set races the toggle's clear-then-set; the
	// shared lock must keep them from interleaving into a double pin.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = messageSvc.Restore(context.Background(), alice.ID, buried.ID)
	}()
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Toggle(context.Background(), alice.ID, rival.ID)
		}()
	}
	wg.Wait()

	uow := env.factory.NewUnitOfWork(context.Background())
	pinned, err := uow.MessageRepository().FindAll(context.Background(), specification.Pinned{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(pinned), 1)
	assert.False(t, env.getMessage(t, buried.ID).IsDeleted)
}
