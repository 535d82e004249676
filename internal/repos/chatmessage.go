package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// MessageFilter narrows ListBySession. A zero Limit means no limit.
type MessageFilter struct {
	Role   *types.MessageRole
	Limit  int
	Offset int
}

type ChatMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error)
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, filter MessageFilter) ([]*types.ChatMessage, error)
	CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error)
	// CountBySessions returns per-session message counts in one grouped
	// query; sessions with no messages are absent from the map.
	CountBySessions(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	repoLog := baseLog.With("repo", "ChatMessageRepo")
	return &chatMessageRepo{db: db, log: repoLog}
}

func (mr *chatMessageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(messages) == 0 {
		return []*types.ChatMessage{}, nil
	}
	for _, m := range messages {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (mr *chatMessageRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, filter MessageFilter) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	query := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC")
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	var messages []*types.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (mr *chatMessageRepo) CountBySessions(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	counts := make(map[uuid.UUID]int64, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		SessionID uuid.UUID
		Total     int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.ChatMessage{}).
		Select("session_id, COUNT(*) AS total").
		Where("session_id IN ?", sessionIDs).
		Group("session_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.SessionID] = row.Total
	}
	return counts, nil
}

func (mr *chatMessageRepo) CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
