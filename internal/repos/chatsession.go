package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// SessionFilter narrows List results. Nil fields are ignored.
type SessionFilter struct {
	Mode     *types.SessionMode
	IsActive *bool
	Limit    int
	Offset   int
}

type ChatSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.ChatSession) (*types.ChatSession, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.ChatSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter SessionFilter) ([]*types.ChatSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.ChatSession) error
	Delete(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) error
	TouchLastMessage(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, at time.Time) error
}

type chatSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, baseLog *logger.Logger) ChatSessionRepo {
	repoLog := baseLog.With("repo", "ChatSessionRepo")
	return &chatSessionRepo{db: db, log: repoLog}
}

func (cr *chatSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ChatSession) (*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.LastMessageAt.IsZero() {
		session.LastMessageAt = time.Now()
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (cr *chatSessionRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var session types.ChatSession
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (cr *chatSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter SessionFilter) ([]*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_message_at DESC")
	if filter.Mode != nil {
		query = query.Where("mode = ?", *filter.Mode)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	var sessions []*types.ChatSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (cr *chatSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.ChatSession) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	session.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).Save(session).Error
}

func (cr *chatSessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&types.ChatSession{}).Error
}

func (cr *chatSessionRepo) TouchLastMessage(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.ChatSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{"last_message_at": at, "updated_at": at}).Error
}
