// Package memory provides map-backed implementations of the repository
// contracts. They back the unit tests and any wiring that wants the engine
// without a database; queries interpret the same specifications the gorm
// implementations apply.
package memory

import (
	"sync"

	"chatsync-be/internal/model"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users     map[uuid.UUID]*model.User
	messages  map[uuid.UUID]*model.Message
	histories map[uuid.UUID]*model.MessageEditHistory
	reactions map[uuid.UUID]*model.Reaction
	mentions  map[uuid.UUID]*model.Mention
	bookmarks map[uuid.UUID]*model.Bookmark
	receipts  map[uuid.UUID]*model.ReadReceipt
	devices   map[uuid.UUID]*model.Device
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]*model.User),
		messages:  make(map[uuid.UUID]*model.Message),
		histories: make(map[uuid.UUID]*model.MessageEditHistory),
		reactions: make(map[uuid.UUID]*model.Reaction),
		mentions:  make(map[uuid.UUID]*model.Mention),
		bookmarks: make(map[uuid.UUID]*model.Bookmark),
		receipts:  make(map[uuid.UUID]*model.ReadReceipt),
		devices:   make(map[uuid.UUID]*model.Device),
	}
}
