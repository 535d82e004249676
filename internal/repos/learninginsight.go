package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type LearningInsightRepo interface {
	// Upsert writes one insight keyed on (user_id, category, insight_key);
	// an existing row has its value, confidence, and source overwritten.
	Upsert(ctx context.Context, tx *gorm.DB, insight *types.LearningInsight) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningInsight, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) (*types.LearningInsight, error)
	Update(ctx context.Context, tx *gorm.DB, insight *types.LearningInsight) error
	Delete(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) error
}

type learningInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningInsightRepo(db *gorm.DB, baseLog *logger.Logger) LearningInsightRepo {
	repoLog := baseLog.With("repo", "LearningInsightRepo")
	return &learningInsightRepo{db: db, log: repoLog}
}

func (lr *learningInsightRepo) Upsert(ctx context.Context, tx *gorm.DB, insight *types.LearningInsight) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	insight.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "insight_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"insight_value", "confidence_score", "source", "updated_at",
			}),
		}).
		Create(insight).Error
}

func (lr *learningInsightRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var insights []*types.LearningInsight
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("confidence_score DESC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (lr *learningInsightRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) (*types.LearningInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var insight types.LearningInsight
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", insightID, userID).
		First(&insight).Error; err != nil {
		return nil, err
	}
	return &insight, nil
}

func (lr *learningInsightRepo) Update(ctx context.Context, tx *gorm.DB, insight *types.LearningInsight) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	insight.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).Save(insight).Error
}

func (lr *learningInsightRepo) Delete(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", insightID, userID).
		Delete(&types.LearningInsight{}).Error
}
