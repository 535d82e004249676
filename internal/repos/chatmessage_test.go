package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// seedExchange writes alternating user/assistant turns, creating the
// parent session row if it does not exist yet.
func seedExchange(t *testing.T, db *gorm.DB, sessionID uuid.UUID, turns int) []*types.ChatMessage {
	t.Helper()
	err := db.Exec(
		`INSERT OR IGNORE INTO chat_session (id, user_id, mode, title) VALUES (?, ?, 'study', 'Test Session')`,
		sessionID, uuid.New(),
	).Error
	if err != nil {
		t.Fatalf("failed to seed session row: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	messages := make([]*types.ChatMessage, 0, turns*2)
	for i := 0; i < turns; i++ {
		messages = append(messages,
			&types.ChatMessage{
				SessionID: sessionID,
				Role:      types.RoleUser,
				Content:   "question",
				CreatedAt: base.Add(time.Duration(2*i) * time.Minute),
			},
			&types.ChatMessage{
				SessionID: sessionID,
				Role:      types.RoleAssistant,
				Content:   "answer",
				CreatedAt: base.Add(time.Duration(2*i+1) * time.Minute),
			},
		)
	}
	saved, err := NewChatMessageRepo(db, testLog()).Create(context.Background(), nil, messages)
	if err != nil {
		t.Fatalf("failed to seed messages: %v", err)
	}
	return saved
}

func TestChatMessageRepo_CreateAssignsIDs(t *testing.T) {
	db := newTestDB(t)
	saved := seedExchange(t, db, uuid.New(), 1)
	for _, m := range saved {
		if m.ID == uuid.Nil {
			t.Fatalf("expected generated message id")
		}
	}
}

func TestChatMessageRepo_Create_EmptyBatchIsNoop(t *testing.T) {
	repo := NewChatMessageRepo(newTestDB(t), testLog())
	saved, err := repo.Create(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("empty create errored: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("expected no messages, got %d", len(saved))
	}
}

func TestChatMessageRepo_ListBySession_OrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatMessageRepo(db, testLog())
	sessionID := uuid.New()
	seedExchange(t, db, sessionID, 3)
	seedExchange(t, db, uuid.New(), 2)

	messages, err := repo.ListBySession(context.Background(), nil, sessionID, MessageFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatalf("messages out of order at index %d", i)
		}
	}
	if messages[0].Role != types.RoleUser {
		t.Fatalf("expected the first turn to be the user's, got %s", messages[0].Role)
	}
}

func TestChatMessageRepo_ListBySession_RoleFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatMessageRepo(db, testLog())
	sessionID := uuid.New()
	seedExchange(t, db, sessionID, 3)

	role := types.RoleAssistant
	messages, err := repo.ListBySession(context.Background(), nil, sessionID, MessageFilter{Role: &role})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 assistant messages, got %d", len(messages))
	}
	for _, m := range messages {
		if m.Role != types.RoleAssistant {
			t.Fatalf("unexpected role %s", m.Role)
		}
	}
}

func TestChatMessageRepo_ListBySession_Pagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatMessageRepo(db, testLog())
	sessionID := uuid.New()
	all := seedExchange(t, db, sessionID, 3)

	page, err := repo.ListBySession(context.Background(), nil, sessionID, MessageFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("paginated list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(page))
	}
	if page[0].ID != all[2].ID || page[1].ID != all[3].ID {
		t.Fatalf("expected the second pair of messages")
	}
}

func TestChatMessageRepo_CountBySessions_GroupsPerSession(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatMessageRepo(db, testLog())
	first := uuid.New()
	second := uuid.New()
	empty := uuid.New()
	seedExchange(t, db, first, 2)
	seedExchange(t, db, second, 1)
	seedExchange(t, db, uuid.New(), 3)

	counts, err := repo.CountBySessions(context.Background(), nil, []uuid.UUID{first, second, empty})
	if err != nil {
		t.Fatalf("grouped count failed: %v", err)
	}
	if counts[first] != 4 || counts[second] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
	if _, ok := counts[empty]; ok {
		t.Fatalf("empty session should be absent from the map, got %v", counts)
	}

	none, err := repo.CountBySessions(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("empty grouped count failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected an empty map, got %v", none)
	}
}

func TestChatMessageRepo_CountBySession(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatMessageRepo(db, testLog())
	sessionID := uuid.New()
	seedExchange(t, db, sessionID, 2)
	seedExchange(t, db, uuid.New(), 5)

	count, err := repo.CountBySession(context.Background(), nil, sessionID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 messages, got %d", count)
	}
}
