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

func TestReceiptMark_DurableBeforeFlush(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	message := env.createMessage(t, alice, "read me")

	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))

	// The receipt is persisted immediately; a reconnect inside the flush
	// window already sees it. The flush only carries the broadcast.
	uow := env.factory.NewUnitOfWork(context.Background())
	receipts, err := uow.ReadReceiptRepository().FindAllByMessage(context.Background(), message.ID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, bob.ID, receipts[0].UserID)
	assert.Empty(t, env.pub.byType(events.ReceiptBatch))

	require.NoError(t, svc.Flush(context.Background()))
	assert.Len(t, env.pub.byType(events.ReceiptBatch), 1)
}

func TestReceiptFlush_DeduplicatesMarks(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	message := env.createMessage(t, alice, "read me")

	// A fast reader marks the same message repeatedly between flushes.
	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))
	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))
	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))

	require.NoError(t, svc.Flush(context.Background()))

	uow := env.factory.NewUnitOfWork(context.Background())
	receipts, err := uow.ReadReceiptRepository().FindAllByMessage(context.Background(), message.ID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, bob.ID, receipts[0].UserID)

	batches := env.pub.byType(events.ReceiptBatch)
	require.Len(t, batches, 1)
	payload := batches[0].Data.(dto.ReceiptBatchPayload)
	require.Len(t, payload.Receipts, 1)
	assert.Equal(t, message.ID, payload.Receipts[0].MessageID)
	assert.Equal(t, []uuid.UUID{bob.ID}, payload.Receipts[0].UserIDs)
}

func TestReceiptFlush_EmptyTickEmitsNothing(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})

	require.NoError(t, svc.Flush(context.Background()))
	assert.Empty(t, env.pub.byType(events.ReceiptBatch))
}

func TestReceiptFlush_DrainsBufferAtomically(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	message := env.createMessage(t, alice, "read me")

	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))
	require.NoError(t, svc.Flush(context.Background()))

	// A second flush finds an empty buffer; the first one drained it.
	require.NoError(t, svc.Flush(context.Background()))
	assert.Len(t, env.pub.byType(events.ReceiptBatch), 1)
}

func TestReceiptMark_MissingMessageIsDropped(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	bob := env.createUser(t, "bob", constant.RoleMember)

	require.NoError(t, svc.Mark(context.Background(), bob.ID, uuid.New()))
	require.NoError(t, svc.Flush(context.Background()))
	assert.Empty(t, env.pub.byType(events.ReceiptBatch))
}

func TestReceiptFlush_SkipsMessagesReapedAfterMark(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	reaped := env.createMessage(t, alice, "gone soon")
	kept := env.createMessage(t, alice, "still here")

	require.NoError(t, svc.Mark(context.Background(), bob.ID, reaped.ID))
	require.NoError(t, svc.Mark(context.Background(), bob.ID, kept.ID))

	uow := env.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.MessageRepository().HardDeleteByIDs(context.Background(), []uuid.UUID{reaped.ID}))

	// The reaped entry drops out of the frame; the surviving one still ships.
	require.NoError(t, svc.Flush(context.Background()))
	batches := env.pub.byType(events.ReceiptBatch)
	require.Len(t, batches, 1)
	payload := batches[0].Data.(dto.ReceiptBatchPayload)
	require.Len(t, payload.Receipts, 1)
	assert.Equal(t, kept.ID, payload.Receipts[0].MessageID)
}

func TestReceiptMark_PersistedDuplicateStaysSingle(t *testing.T) {
	env := newTestEnv()
	svc := NewReceiptService(env.factory, env.pub, nopLogger{})
	alice := env.createUser(t, "alice", constant.RoleMember)
	bob := env.createUser(t, "bob", constant.RoleMember)
	message := env.createMessage(t, alice, "read me")

	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))
	require.NoError(t, svc.Flush(context.Background()))

	// The same pair marked again in a later window upserts, not duplicates.
	require.NoError(t, svc.Mark(context.Background(), bob.ID, message.ID))
	require.NoError(t, svc.Flush(context.Background()))

	uow := env.factory.NewUnitOfWork(context.Background())
	receipts, err := uow.ReadReceiptRepository().FindAllByMessage(context.Background(), message.ID)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}
