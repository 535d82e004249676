package types

import (
	"time"

	"github.com/google/uuid"
)

// SessionMode is the fixed persona the assistant adopts for a conversation.
// It is immutable after session creation.
type SessionMode string

const (
	ModeStudy     SessionMode = "study"
	ModeDebate    SessionMode = "debate"
	ModeNoteTaker SessionMode = "note-taker"
	ModeExplainer SessionMode = "explainer"
	ModeCustom    SessionMode = "custom"
)

func (m SessionMode) Valid() bool {
	switch m {
	case ModeStudy, ModeDebate, ModeNoteTaker, ModeExplainer, ModeCustom:
		return true
	}
	return false
}

type ChatSession struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User             *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Mode             SessionMode `gorm:"not null;column:mode" json:"mode"`
	Title            string      `gorm:"not null;column:title" json:"title"`
	ContextBookID    string      `gorm:"column:context_book_id" json:"context_book_id"`
	ContextChapter   int         `gorm:"column:context_chapter" json:"context_chapter"`
	ContextVersionID string      `gorm:"column:context_version_id" json:"context_version_id"`
	IsActive         bool        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt        time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null;default:now()" json:"updated_at"`
	LastMessageAt    time.Time   `gorm:"not null;default:now();column:last_message_at" json:"last_message_at"`
}

func (ChatSession) TableName() string { return "chat_session" }
