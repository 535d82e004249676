package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type ReadingRepo interface {
	// LatestProgress returns the most recently updated reading position.
	LatestProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingProgress, error)
	Settings(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingSettings, error)
	Plan(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingPlan, error)
	Stats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingStats, error)
}

type readingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadingRepo(db *gorm.DB, baseLog *logger.Logger) ReadingRepo {
	repoLog := baseLog.With("repo", "ReadingRepo")
	return &readingRepo{db: db, log: repoLog}
}

func (rr *readingRepo) LatestProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var progress types.ReadingProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (rr *readingRepo) Settings(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var settings types.ReadingSettings
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (rr *readingRepo) Plan(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var plan types.ReadingPlan
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (rr *readingRepo) Stats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ReadingStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var stats types.ReadingStats
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
