package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func attachClient(t *testing.T, hub *Hub, userID uuid.UUID) *Client {
	t.Helper()
	client := &Client{
		Hub:       hub,
		UserID:    userID,
		SessionID: uuid.New(),
		Send:      make(chan []byte, 8),
	}
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.sessions[client.SessionID]
		return ok
	}, time.Second, time.Millisecond)
	return client
}

func drain(client *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame := <-client.Send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestHub_BroadcastReachesEverySession(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	alice := uuid.New()
	aliceLaptop := attachClient(t, hub, alice)
	alicePhone := attachClient(t, hub, alice)
	bobTab := attachClient(t, hub, uuid.New())

	hub.Broadcast([]byte(`{"type":"message.new"}`))

	for _, client := range []*Client{aliceLaptop, alicePhone, bobTab} {
		assert.Len(t, drain(client), 1)
	}
}

func TestHub_SendToUserHitsAllDevicesOfThatUserOnly(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	alice := uuid.New()
	aliceLaptop := attachClient(t, hub, alice)
	alicePhone := attachClient(t, hub, alice)
	bobTab := attachClient(t, hub, uuid.New())

	hub.SendToUser(alice, []byte(`{"type":"mention.read.self"}`))

	assert.Len(t, drain(aliceLaptop), 1)
	assert.Len(t, drain(alicePhone), 1)
	assert.Empty(t, drain(bobTab))
}

func TestHub_SendToSessionTargetsOneConnection(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	alice := uuid.New()
	aliceLaptop := attachClient(t, hub, alice)
	alicePhone := attachClient(t, hub, alice)

	hub.SendToSession(alicePhone.SessionID, []byte(`{"type":"session.force_logout"}`))

	assert.Empty(t, drain(aliceLaptop))
	assert.Len(t, drain(alicePhone), 1)

	// Unknown session is a silent no-op.
	hub.SendToSession(uuid.New(), []byte(`{}`))
}

func TestHub_FullBufferDropsFrameInsteadOfBlocking(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	slow := attachClient(t, hub, uuid.New())
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte(`{}`)
	}

	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte(`{"type":"message.new"}`))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full send buffer")
	}
	assert.Len(t, drain(slow), cap(slow.Send))
}

func TestHub_UnregisterRemovesBothIndexes(t *testing.T) {
	hub := NewHub(nopLogger{})
	go hub.Run()

	alice := uuid.New()
	client := attachClient(t, hub, alice)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, bySession := hub.sessions[client.SessionID]
		_, byUser := hub.clients[alice]
		return !bySession && !byUser
	}, time.Second, time.Millisecond)

	// The hub closed the send channel on the way out.
	_, open := <-client.Send
	assert.False(t, open)

	hub.SendToUser(alice, []byte(`{}`))
	hub.SendToSession(client.SessionID, []byte(`{}`))
}
