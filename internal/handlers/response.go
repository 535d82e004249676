package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
)

type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RespondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, SuccessEnvelope{Success: true, Data: data, Message: message})
}

func RespondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, SuccessEnvelope{Success: true, Data: data, Message: message})
}

// RespondError normalizes any error into the error envelope. Internal
// detail is only exposed outside production mode.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	envelope := ErrorEnvelope{Success: false, Error: clientMessage(ae)}
	if os.Getenv("MODE") != "production" && ae.Err != nil {
		envelope.Details = ae.Err.Error()
	}
	c.JSON(ae.Status, envelope)
}

// clientMessage keeps 4xx messages verbatim and collapses 5xx detail into
// a generic line; the full error is logged server-side.
func clientMessage(ae *apierr.Error) string {
	switch ae.Code {
	case apierr.CodeUpstream:
		return "internal server error"
	case apierr.CodeAIUnavailable:
		return "AI is temporarily unavailable, please try again"
	default:
		return ae.Error()
	}
}
