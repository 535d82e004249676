package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type AchievementRepo interface {
	UnlockedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	repoLog := baseLog.With("repo", "AchievementRepo")
	return &achievementRepo{db: db, log: repoLog}
}

func (ar *achievementRepo) UnlockedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var unlocked []*types.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error; err != nil {
		return nil, err
	}
	return unlocked, nil
}
