package types

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Category    string    `gorm:"column:category" json:"category"`
	Points      int       `gorm:"not null;default:0;column:points" json:"points"`
	Tier        string    `gorm:"column:tier" json:"tier"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Achievement) TableName() string { return "reading_achievement" }

type UserAchievement struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID    `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	AchievementID uuid.UUID    `gorm:"type:uuid;not null;column:achievement_id" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID;references:ID" json:"achievement,omitempty"`
	UnlockedAt    time.Time    `gorm:"not null;default:now();column:unlocked_at" json:"unlocked_at"`
}

func (UserAchievement) TableName() string { return "user_achievement" }
