package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/requestdata"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/services"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type LearningProfileHandler struct {
	log            *logger.Logger
	profileService services.LearningProfileService
}

func NewLearningProfileHandler(log *logger.Logger, profileService services.LearningProfileService) *LearningProfileHandler {
	return &LearningProfileHandler{
		log:            log.With("handler", "LearningProfileHandler"),
		profileService: profileService,
	}
}

func (lh *LearningProfileHandler) Get(c *gin.Context) {
	profile, err := lh.profileService.Get(c.Request.Context(), requestdata.UserID(c.Request.Context()))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, profile, "Learning profile retrieved successfully")
}

func (lh *LearningProfileHandler) Update(c *gin.Context) {
	insightID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		InsightValue    *string  `json:"insight_value"`
		ConfidenceScore *float64 `json:"confidence_score"`
		Source          *string  `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if req.InsightValue == nil && req.ConfidenceScore == nil && req.Source == nil {
		RespondError(c, apierr.Validation("nothing to update"))
		return
	}

	input := services.UpdateInsightInput{
		Value:      req.InsightValue,
		Confidence: req.ConfidenceScore,
	}
	if req.Source != nil {
		source := types.InsightSource(*req.Source)
		input.Source = &source
	}

	insight, err := lh.profileService.Update(c.Request.Context(), requestdata.UserID(c.Request.Context()), insightID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, insight, "Learning insight updated successfully")
}

func (lh *LearningProfileHandler) Delete(c *gin.Context) {
	insightID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := lh.profileService.Delete(c.Request.Context(), requestdata.UserID(c.Request.Context()), insightID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil, "Learning insight deleted successfully")
}
