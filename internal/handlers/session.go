package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/requestdata"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/services"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

const defaultSessionPageSize = 20

type SessionHandler struct {
	log            *logger.Logger
	sessionService services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:            log.With("handler", "SessionHandler"),
		sessionService: sessionService,
	}
}

func (sh *SessionHandler) Create(c *gin.Context) {
	var req struct {
		Mode             string `json:"mode" binding:"required"`
		Title            string `json:"title"`
		ContextBookID    string `json:"context_book_id"`
		ContextChapter   int    `json:"context_chapter"`
		ContextVersionID string `json:"context_version_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if req.ContextChapter < 0 {
		RespondError(c, apierr.Validation("context_chapter must be positive"))
		return
	}

	session, err := sh.sessionService.Create(c.Request.Context(), requestdata.UserID(c.Request.Context()), services.CreateSessionInput{
		Mode:             types.SessionMode(req.Mode),
		Title:            req.Title,
		ContextBookID:    req.ContextBookID,
		ContextChapter:   req.ContextChapter,
		ContextVersionID: req.ContextVersionID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, session, "Chat session created successfully")
}

func (sh *SessionHandler) List(c *gin.Context) {
	filter := repos.SessionFilter{
		Limit:  queryInt(c, "limit", defaultSessionPageSize),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("mode"); raw != "" {
		mode := types.SessionMode(raw)
		if !mode.Valid() {
			RespondError(c, apierr.Validation("unknown session mode %q", raw))
			return
		}
		filter.Mode = &mode
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, apierr.Validation("is_active must be a boolean"))
			return
		}
		filter.IsActive = &active
	}

	sessions, err := sh.sessionService.List(c.Request.Context(), requestdata.UserID(c.Request.Context()), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, sessions, "Chat sessions retrieved successfully")
}

func (sh *SessionHandler) Get(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	detail, err := sh.sessionService.Get(c.Request.Context(), requestdata.UserID(c.Request.Context()), sessionID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, detail, "Chat session retrieved successfully")
}

func (sh *SessionHandler) Update(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Title    *string `json:"title"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	if req.Title == nil && req.IsActive == nil {
		RespondError(c, apierr.Validation("nothing to update"))
		return
	}

	session, err := sh.sessionService.Update(c.Request.Context(), requestdata.UserID(c.Request.Context()), sessionID, services.UpdateSessionInput{
		Title:    req.Title,
		IsActive: req.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, session, "Chat session updated successfully")
}

func (sh *SessionHandler) Delete(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := sh.sessionService.Delete(c.Request.Context(), requestdata.UserID(c.Request.Context()), sessionID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil, "Chat session deleted successfully")
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid %s", name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
