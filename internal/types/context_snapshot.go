package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SnapshotType string

const (
	SnapshotNotes             SnapshotType = "notes"
	SnapshotHighlights        SnapshotType = "highlights"
	SnapshotBookmarks         SnapshotType = "bookmarks"
	SnapshotReadingProgress   SnapshotType = "reading_progress"
	SnapshotVerseInteractions SnapshotType = "verse_interactions"
)

// ContextSnapshot is a point-in-time copy of one category of a user's study
// data, captured at session creation for audit and replay. Snapshots are
// only written when the category holds data.
type ContextSnapshot struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID uuid.UUID      `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	Session   *ChatSession   `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	Type      SnapshotType   `gorm:"not null;column:snapshot_type" json:"snapshot_type"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null;column:data" json:"data"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ContextSnapshot) TableName() string { return "chat_context_snapshot" }
