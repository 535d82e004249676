package types

import (
	"time"

	"github.com/google/uuid"
)

type ReadingProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	BookID    string    `gorm:"not null;column:book_id" json:"book_id"`
	Chapter   int       `gorm:"not null;column:chapter" json:"chapter"`
	VersionID string    `gorm:"column:version_id" json:"version_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ReadingProgress) TableName() string { return "bible_reading_progress" }

type ReadingSettings struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	PreferredVersionAbbr string    `gorm:"column:preferred_version_abbreviation" json:"preferred_version_abbreviation"`
	AutoPlayAudio        bool      `gorm:"not null;default:false;column:auto_play_audio" json:"auto_play_audio"`
	FontSize             string    `gorm:"column:font_size" json:"font_size"`
	ReadingMode          string    `gorm:"column:reading_mode" json:"reading_mode"`
	CreatedAt            time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ReadingSettings) TableName() string { return "bible_reading_settings" }

type ReadingPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	Enabled       bool      `gorm:"not null;default:false;column:enabled" json:"enabled"`
	PlanDuration  int       `gorm:"column:plan_duration" json:"plan_duration"`
	CurrentDay    int       `gorm:"column:current_day" json:"current_day"`
	CompletedDays int       `gorm:"column:completed_days" json:"completed_days"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ReadingPlan) TableName() string { return "user_reading_plan" }

type ReadingStats struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	CurrentLevel         int       `gorm:"not null;default:1;column:current_level" json:"current_level"`
	CurrentStreak        int       `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	TotalChaptersRead    int       `gorm:"not null;default:0;column:total_chapters_read" json:"total_chapters_read"`
	AchievementsUnlocked int       `gorm:"not null;default:0;column:total_achievements_unlocked" json:"total_achievements_unlocked"`
	CreatedAt            time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ReadingStats) TableName() string { return "user_reading_stats" }
