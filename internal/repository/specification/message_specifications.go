package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByAuthorID filters messages by their author.
type ByAuthorID struct {
	AuthorID uuid.UUID
}

func (s ByAuthorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.AuthorID)
}

// ByParentID filters replies of one message; nil selects roots.
type ByParentID struct {
	ParentID *uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", s.ParentID)
}

// ByParentIDs selects every reply whose parent is in the frontier set; used
// by the level-order thread walk.
type ByParentIDs struct {
	ParentIDs []uuid.UUID
}

func (s ByParentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IN ?", s.ParentIDs)
}

// NotDeleted excludes soft-deleted messages.
type NotDeleted struct{}

func (s NotDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// NotExpired excludes messages whose self-destruct time has passed but that
// the reaper has not removed yet.
type NotExpired struct {
	Now time.Time
}

func (s NotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at IS NULL OR expires_at > ?", s.Now)
}

// ContentContains is the "contains" predicate of the search surface.
type ContentContains struct {
	Query string
}

func (s ContentContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content ILIKE ?", "%"+s.Query+"%")
}

// CreatedBefore supports cursor pagination (newest-first feed).
type CreatedBefore struct {
	Cursor time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Cursor)
}

// CreatedAfter supports date-range search and context windows.
type CreatedAfter struct {
	Cursor time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.Cursor)
}

// ByKind filters by message kind (text/image/file).
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// Pinned selects the currently pinned message.
type Pinned struct{}

func (s Pinned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_pinned = ?", true)
}

// WithAuthor preloads the author association for display info.
type WithAuthor struct{}

func (s WithAuthor) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}
