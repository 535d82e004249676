package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// UpdateInsightInput holds the caller-editable fields of one insight.
// Nil means "leave unchanged".
type UpdateInsightInput struct {
	Value      *string
	Confidence *float64
	Source     *types.InsightSource
}

type LearningProfileService interface {
	// Get returns the user's insights grouped by category, each group
	// ordered by confidence descending.
	Get(ctx context.Context, userID uuid.UUID) (map[string][]*types.LearningInsight, error)
	Update(ctx context.Context, userID, insightID uuid.UUID, input UpdateInsightInput) (*types.LearningInsight, error)
	Delete(ctx context.Context, userID, insightID uuid.UUID) error
}

type learningProfileService struct {
	log      *logger.Logger
	insights repos.LearningInsightRepo
}

func NewLearningProfileService(log *logger.Logger, insights repos.LearningInsightRepo) LearningProfileService {
	return &learningProfileService{
		log:      log.With("service", "LearningProfileService"),
		insights: insights,
	}
}

func (lp *learningProfileService) Get(ctx context.Context, userID uuid.UUID) (map[string][]*types.LearningInsight, error) {
	insights, err := lp.insights.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("list learning insights: %w", err))
	}

	grouped := make(map[string][]*types.LearningInsight)
	for _, insight := range insights {
		grouped[insight.Category] = append(grouped[insight.Category], insight)
	}
	return grouped, nil
}

func (lp *learningProfileService) Update(ctx context.Context, userID, insightID uuid.UUID, input UpdateInsightInput) (*types.LearningInsight, error) {
	insight, err := lp.insights.GetByIDForUser(ctx, nil, insightID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("learning insight not found")
		}
		return nil, apierr.Upstream(fmt.Errorf("load learning insight: %w", err))
	}

	if input.Value != nil {
		insight.Value = *input.Value
	}
	if input.Confidence != nil {
		if *input.Confidence < 0 || *input.Confidence > 1 {
			return nil, apierr.Validation("confidence_score must be between 0 and 1")
		}
		insight.Confidence = *input.Confidence
	}
	if input.Source != nil {
		if *input.Source != types.InsightSourceAuto && *input.Source != types.InsightSourceManual {
			return nil, apierr.Validation("unknown insight source %q", *input.Source)
		}
		insight.Source = *input.Source
	}

	if err := lp.insights.Update(ctx, nil, insight); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("update learning insight: %w", err))
	}
	return insight, nil
}

func (lp *learningProfileService) Delete(ctx context.Context, userID, insightID uuid.UUID) error {
	if _, err := lp.insights.GetByIDForUser(ctx, nil, insightID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("learning insight not found")
		}
		return apierr.Upstream(fmt.Errorf("load learning insight: %w", err))
	}
	if err := lp.insights.Delete(ctx, nil, insightID, userID); err != nil {
		return apierr.Upstream(fmt.Errorf("delete learning insight: %w", err))
	}
	lp.log.Info("Learning insight deleted", "insight_id", insightID, "user_id", userID)
	return nil
}
