package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"chatsync-be/internal/authz"
	"chatsync-be/internal/constant"
	"chatsync-be/internal/model"
	"chatsync-be/internal/pkg/linkpreview"
	"chatsync-be/internal/pkg/sanitizer"
	"chatsync-be/internal/repository/memory"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// capturePublisher records every delta the services publish.
type capturePublisher struct {
	mu     sync.Mutex
	deltas []events.Delta
}

func (p *capturePublisher) Publish(delta events.Delta) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deltas = append(p.deltas, delta)
	return nil
}

func (p *capturePublisher) byType(eventType string) []events.Delta {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Delta
	for _, delta := range p.deltas {
		if delta.Type == eventType {
			out = append(out, delta)
		}
	}
	return out
}

func (p *capturePublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deltas = nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type testEnv struct {
	store   *memory.Store
	factory unitofwork.RepositoryFactory
	pub     *capturePublisher
	guard   *authz.Guard
	pins    *PinLock
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	return &testEnv{
		store:   store,
		factory: memory.NewRepositoryFactory(store),
		pub:     &capturePublisher{},
		guard:   authz.NewGuard(),
		pins:    NewPinLock(),
	}
}

func (e *testEnv) messageService() IMessageService {
	return NewMessageService(e.factory, e.pub, e.guard, sanitizer.New(), linkpreview.NewFetcher(time.Second), e.pins, nopLogger{})
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: username,
		Role:        role,
	}
	uow := e.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func (e *testEnv) createMessage(t *testing.T, author *model.User, content string, mutators ...func(*model.Message)) *model.Message {
	t.Helper()
	message := &model.Message{
		ID:       uuid.New(),
		AuthorID: author.ID,
		Content:  &content,
		Kind:     constant.MessageKindText,
	}
	for _, mutate := range mutators {
		mutate(message)
	}
	uow := e.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.MessageRepository().Create(context.Background(), message))
	return message
}

func (e *testEnv) getMessage(t *testing.T, id uuid.UUID) *model.Message {
	t.Helper()
	uow := e.factory.NewUnitOfWork(context.Background())
	message, err := uow.MessageRepository().FindByID(context.Background(), id)
	require.NoError(t, err)
	return message
}
