package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// StudyActivityRepo reads the study rows the context aggregator consumes.
// Every query returns the most recent rows first.
type StudyActivityRepo interface {
	RecentNotes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Note, error)
	RecentHighlights(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Highlight, error)
	RecentBookmarks(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Bookmark, error)
	RecentLovedVerses(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VerseLove, error)
}

type studyActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyActivityRepo(db *gorm.DB, baseLog *logger.Logger) StudyActivityRepo {
	repoLog := baseLog.With("repo", "StudyActivityRepo")
	return &studyActivityRepo{db: db, log: repoLog}
}

func (sr *studyActivityRepo) RecentNotes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var notes []*types.Note
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (sr *studyActivityRepo) RecentHighlights(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Highlight, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var highlights []*types.Highlight
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&highlights).Error; err != nil {
		return nil, err
	}
	return highlights, nil
}

func (sr *studyActivityRepo) RecentBookmarks(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Bookmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var bookmarks []*types.Bookmark
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (sr *studyActivityRepo) RecentLovedVerses(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VerseLove, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var loves []*types.VerseLove
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&loves).Error; err != nil {
		return nil, err
	}
	return loves, nil
}
