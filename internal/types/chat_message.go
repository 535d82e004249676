package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

func (r MessageRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatMessage ordering within a session is by CreatedAt ascending.
type ChatMessage struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID        uuid.UUID      `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	Session          *ChatSession   `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	Role             MessageRole    `gorm:"not null;column:role" json:"role"`
	Content          string         `gorm:"not null;column:content" json:"content"`
	FormattedContent datatypes.JSON `gorm:"type:jsonb;column:formatted_content" json:"formatted_content,omitempty"`
	Metadata         datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	TokensUsed       int            `gorm:"not null;default:0;column:tokens_used" json:"tokens_used"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }
