package types

import (
	"time"

	"github.com/google/uuid"
)

type InsightSource string

const (
	InsightSourceAuto   InsightSource = "auto"
	InsightSourceManual InsightSource = "manual"
)

// Insight categories produced by the extractor.
const (
	InsightCategoryQuestionPatterns = "question_patterns"
	InsightCategoryTheological      = "theological_preference"
	InsightCategoryStudyStyle       = "study_style"
)

// LearningInsight is one per-user heuristic observation. The
// (user_id, category, insight_key) triple is unique; new evidence
// overwrites value and confidence rather than accumulating history.
type LearningInsight struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_insight_user_category_key;column:user_id" json:"user_id"`
	User       *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Category   string        `gorm:"not null;uniqueIndex:idx_insight_user_category_key;column:category" json:"category"`
	InsightKey string        `gorm:"not null;uniqueIndex:idx_insight_user_category_key;column:insight_key" json:"insight_key"`
	Value      string        `gorm:"not null;column:insight_value" json:"insight_value"`
	Confidence float64       `gorm:"not null;column:confidence_score" json:"confidence_score"`
	Source     InsightSource `gorm:"not null;default:'auto';column:source" json:"source"`
	CreatedAt  time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningInsight) TableName() string { return "learning_insight" }
