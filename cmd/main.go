package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/db"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/handlers"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/middleware"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/server"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/services"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := os.Getenv("JWT_SECRET_KEY")
	chatRateLimit := utils.GetEnvAsInt("CHAT_RATE_LIMIT", 30, log)
	allowedOrigins := strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000", log), ",")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis
	redisClient, err := db.NewRedisClient(log)
	if err != nil {
		log.Warn("Redis init failed, rate limiting disabled", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	sessionRepo := repos.NewChatSessionRepo(thePG, log)
	messageRepo := repos.NewChatMessageRepo(thePG, log)
	snapshotRepo := repos.NewContextSnapshotRepo(thePG, log)
	insightRepo := repos.NewLearningInsightRepo(thePG, log)
	studyRepo := repos.NewStudyActivityRepo(thePG, log)
	readingRepo := repos.NewReadingRepo(thePG, log)
	achievementRepo := repos.NewAchievementRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	backgroundTasks := services.NewBackgroundTasks(log)
	contextBuilder := services.NewContextBuilder(log, userRepo, readingRepo, studyRepo, achievementRepo, insightRepo)
	annotator := services.NewAnnotator(log)
	insightExtractor := services.NewInsightExtractor(log, insightRepo)
	chatService := services.NewChatService(log, sessionRepo, messageRepo, contextBuilder, openaiClient, annotator, insightExtractor, backgroundTasks)
	sessionService := services.NewSessionService(log, sessionRepo, messageRepo, snapshotRepo, contextBuilder, chatService)
	profileService := services.NewLearningProfileService(log, insightRepo)
	authService, err := services.NewAuthService(log, jwtSecretKey)
	if err != nil {
		log.Error("Could not init AuthService", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	sessionHandler := handlers.NewSessionHandler(log, sessionService)
	messageHandler := handlers.NewMessageHandler(log, chatService, sessionService)
	profileHandler := handlers.NewLearningProfileHandler(log, profileService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	rateLimit := middleware.NewRateLimitMiddleware(log, redisClient, chatRateLimit, time.Minute)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:         authMiddleware,
		ChatRateLimit:          rateLimit,
		SessionHandler:         sessionHandler,
		MessageHandler:         messageHandler,
		LearningProfileHandler: profileHandler,
		AllowedOrigins:         allowedOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Drain in-flight requests and detached insight extraction before exit.
	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown error", "error", err)
	}
	backgroundTasks.Shutdown(15 * time.Second)
	log.Info("Shutdown complete")
}
