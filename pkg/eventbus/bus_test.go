package eventbus

import (
	"context"
	"testing"
	"time"

	"chatsync-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribeRoundtrip(t *testing.T) {
	bus := New(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deltas, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, bus.Publish(events.NewDelta(
		events.MessageNew,
		map[string]string{"content": "hello"},
		events.ToUser(userID),
	)))

	select {
	case delta := <-deltas:
		assert.Equal(t, events.MessageNew, delta.Type)
		require.NotNil(t, delta.Audience.UserID)
		assert.Equal(t, userID, *delta.Audience.UserID)
		assert.Equal(t, map[string]interface{}{"content": "hello"}, delta.Data)
		assert.False(t, delta.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("delta never arrived")
	}
}

func TestBus_PreservesPublishOrder(t *testing.T) {
	bus := New(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deltas, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	types := []string{events.MessageNew, events.MessageUpdated, events.MessageDeleted}
	for _, eventType := range types {
		require.NoError(t, bus.Publish(events.NewDelta(eventType, nil, events.Broadcast())))
	}

	for _, want := range types {
		select {
		case delta := <-deltas:
			assert.Equal(t, want, delta.Type)
			assert.True(t, delta.Audience.All)
		case <-time.After(time.Second):
			t.Fatal("stream ended early")
		}
	}
}

func TestBus_SubscriptionEndsWithContext(t *testing.T) {
	bus := New(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	deltas, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, open := <-deltas:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
