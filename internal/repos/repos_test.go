package repos

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
)

// newTestDB opens an in-memory SQLite database private to the calling
// test. Shared cache keeps the pooled connections on the same database;
// the test name keeps tests off each other's. The production schema
// leans on Postgres defaults (uuid_generate_v4, now), so tables are
// created here with plain DDL instead of AutoMigrate.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// SQLite leaves FK enforcement off unless asked; the cascade tests
	// depend on it, and the DSN flag covers every pooled connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE chat_session (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			title TEXT NOT NULL,
			context_book_id TEXT,
			context_chapter INTEGER,
			context_version_id TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_message_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE chat_message (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			formatted_content TEXT,
			metadata TEXT,
			tokens_used INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES chat_session (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE chat_context_snapshot (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			snapshot_type TEXT NOT NULL,
			data TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES chat_session (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE learning_insight (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			category TEXT NOT NULL,
			insight_key TEXT NOT NULL,
			insight_value TEXT NOT NULL,
			confidence_score REAL NOT NULL,
			source TEXT NOT NULL DEFAULT 'auto',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, category, insight_key)
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}
	return db
}

func testLog() *logger.Logger {
	return logger.Nop()
}
