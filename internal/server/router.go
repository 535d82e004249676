package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/handlers"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware         *middleware.AuthMiddleware
	ChatRateLimit          *middleware.RateLimitMiddleware
	SessionHandler         *handlers.SessionHandler
	MessageHandler         *handlers.MessageHandler
	LearningProfileHandler *handlers.LearningProfileHandler
	AllowedOrigins         []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	chat := router.Group("/api/ai-chat")
	chat.Use(cfg.AuthMiddleware.RequireAuth())
	chat.Use(cfg.ChatRateLimit.Limit())

	// Sessions
	chat.POST("/sessions", cfg.SessionHandler.Create)
	chat.GET("/sessions", cfg.SessionHandler.List)
	chat.GET("/sessions/:id", cfg.SessionHandler.Get)
	chat.PATCH("/sessions/:id", cfg.SessionHandler.Update)
	chat.DELETE("/sessions/:id", cfg.SessionHandler.Delete)

	// Messages
	chat.POST("/sessions/:id/messages", cfg.MessageHandler.Send)
	chat.GET("/sessions/:id/messages", cfg.MessageHandler.List)

	// Learning profile
	chat.GET("/learning-profile", cfg.LearningProfileHandler.Get)
	chat.PUT("/learning-profile/:id", cfg.LearningProfileHandler.Update)
	chat.DELETE("/learning-profile/:id", cfg.LearningProfileHandler.Delete)

	return router
}
