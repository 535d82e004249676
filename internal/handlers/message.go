package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/requestdata"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/services"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

const defaultMessagePageSize = 50

type MessageHandler struct {
	log            *logger.Logger
	chatService    services.ChatService
	sessionService services.SessionService
}

func NewMessageHandler(log *logger.Logger, chatService services.ChatService, sessionService services.SessionService) *MessageHandler {
	return &MessageHandler{
		log:            log.With("handler", "MessageHandler"),
		chatService:    chatService,
		sessionService: sessionService,
	}
}

func (mh *MessageHandler) Send(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("content is required"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		RespondError(c, apierr.Validation("content cannot be empty"))
		return
	}

	reply, err := mh.chatService.SendMessage(c.Request.Context(), requestdata.UserID(c.Request.Context()), sessionID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reply, "Message sent successfully")
}

func (mh *MessageHandler) List(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	filter := repos.MessageFilter{
		Limit:  queryInt(c, "limit", defaultMessagePageSize),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("role"); raw != "" {
		role := types.MessageRole(raw)
		if !role.Valid() {
			RespondError(c, apierr.Validation("unknown message role %q", raw))
			return
		}
		filter.Role = &role
	}

	messages, err := mh.sessionService.Messages(c.Request.Context(), requestdata.UserID(c.Request.Context()), sessionID, filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, messages, "Messages retrieved successfully")
}
