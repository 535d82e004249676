package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "mountsinai", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.ChatSession{},
		&types.ChatMessage{},
		&types.ContextSnapshot{},
		&types.LearningInsight{},
		&types.Note{},
		&types.Highlight{},
		&types.Bookmark{},
		&types.VerseLove{},
		&types.ReadingProgress{},
		&types.ReadingSettings{},
		&types.ReadingPlan{},
		&types.ReadingStats{},
		&types.Achievement{},
		&types.UserAchievement{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name  string
		table string
		stmt  string
	}{
		{"fk_chat_session_user_id", "chat_session", `
			ALTER TABLE "chat_session"
			ADD CONSTRAINT "fk_chat_session_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`},
		{"fk_chat_message_session_id", "chat_message", `
			ALTER TABLE "chat_message"
			ADD CONSTRAINT "fk_chat_message_session_id"
			FOREIGN KEY ("session_id") REFERENCES "chat_session"("id")
			ON DELETE CASCADE`},
		{"fk_chat_context_snapshot_session_id", "chat_context_snapshot", `
			ALTER TABLE "chat_context_snapshot"
			ADD CONSTRAINT "fk_chat_context_snapshot_session_id"
			FOREIGN KEY ("session_id") REFERENCES "chat_session"("id")
			ON DELETE CASCADE`},
		{"fk_learning_insight_user_id", "learning_insight", `
			ALTER TABLE "learning_insight"
			ADD CONSTRAINT "fk_learning_insight_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		var count int64
		s.db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, c.name).Scan(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Exec(c.stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
