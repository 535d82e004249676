package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type ContextSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshots []*types.ContextSnapshot) ([]*types.ContextSnapshot, error)
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.ContextSnapshot, error)
}

type contextSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContextSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) ContextSnapshotRepo {
	repoLog := baseLog.With("repo", "ContextSnapshotRepo")
	return &contextSnapshotRepo{db: db, log: repoLog}
}

func (sr *contextSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshots []*types.ContextSnapshot) ([]*types.ContextSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(snapshots) == 0 {
		return []*types.ContextSnapshot{}, nil
	}
	for _, s := range snapshots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (sr *contextSnapshotRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.ContextSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var snapshots []*types.ContextSnapshot
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
