package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// In-memory stand-ins for the repo and gateway interfaces, so service
// behavior can be tested without a database or a model endpoint.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*types.ChatSession
	touches  int
}

func newFakeSessionRepo(sessions ...*types.ChatSession) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: make(map[uuid.UUID]*types.ChatSession)}
	for _, s := range sessions {
		repo.sessions[s.ID] = s
	}
	return repo
}

func (fr *fakeSessionRepo) Create(_ context.Context, _ *gorm.DB, session *types.ChatSession) (*types.ChatSession, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	fr.sessions[session.ID] = session
	return session, nil
}

func (fr *fakeSessionRepo) GetByIDForUser(_ context.Context, _ *gorm.DB, sessionID, userID uuid.UUID) (*types.ChatSession, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	session, ok := fr.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (fr *fakeSessionRepo) ListByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID, _ repos.SessionFilter) ([]*types.ChatSession, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var out []*types.ChatSession
	for _, s := range fr.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (fr *fakeSessionRepo) Update(_ context.Context, _ *gorm.DB, session *types.ChatSession) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.sessions[session.ID] = session
	return nil
}

func (fr *fakeSessionRepo) Delete(_ context.Context, _ *gorm.DB, sessionID, userID uuid.UUID) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if s, ok := fr.sessions[sessionID]; ok && s.UserID == userID {
		delete(fr.sessions, sessionID)
	}
	return nil
}

func (fr *fakeSessionRepo) TouchLastMessage(_ context.Context, _ *gorm.DB, sessionID uuid.UUID, at time.Time) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.touches++
	if s, ok := fr.sessions[sessionID]; ok {
		s.LastMessageAt = at
	}
	return nil
}

type fakeMessageRepo struct {
	mu        sync.Mutex
	messages  []*types.ChatMessage
	createErr error
}

func (fr *fakeMessageRepo) Create(_ context.Context, _ *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.createErr != nil {
		return nil, fr.createErr
	}
	for _, m := range messages {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
	}
	fr.messages = append(fr.messages, messages...)
	return messages, nil
}

func (fr *fakeMessageRepo) ListBySession(_ context.Context, _ *gorm.DB, sessionID uuid.UUID, filter repos.MessageFilter) ([]*types.ChatMessage, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var out []*types.ChatMessage
	for _, m := range fr.messages {
		if m.SessionID != sessionID {
			continue
		}
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		out = append(out, m)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (fr *fakeMessageRepo) CountBySessions(_ context.Context, _ *gorm.DB, sessionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = true
	}
	counts := make(map[uuid.UUID]int64)
	for _, m := range fr.messages {
		if wanted[m.SessionID] {
			counts[m.SessionID]++
		}
	}
	return counts, nil
}

func (fr *fakeMessageRepo) CountBySession(_ context.Context, _ *gorm.DB, sessionID uuid.UUID) (int64, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var count int64
	for _, m := range fr.messages {
		if m.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []*types.ContextSnapshot
}

func (fr *fakeSnapshotRepo) Create(_ context.Context, _ *gorm.DB, snapshots []*types.ContextSnapshot) ([]*types.ContextSnapshot, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.snapshots = append(fr.snapshots, snapshots...)
	return snapshots, nil
}

func (fr *fakeSnapshotRepo) ListBySession(_ context.Context, _ *gorm.DB, sessionID uuid.UUID) ([]*types.ContextSnapshot, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var out []*types.ContextSnapshot
	for _, s := range fr.snapshots {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeContextBuilder struct {
	userContext *types.UserContext
	err         error
}

func (fb *fakeContextBuilder) BuildUserContext(_ context.Context, userID uuid.UUID) (*types.UserContext, error) {
	if fb.err != nil {
		return nil, fb.err
	}
	if fb.userContext != nil {
		return fb.userContext, nil
	}
	return &types.UserContext{UserID: userID.String()}, nil
}

type fakeGateway struct {
	reply       string
	tokens      int
	err         error
	greeting    string
	greetingErr error

	gotSystem  string
	gotHistory []ChatTurn
	gotMessage string
}

func (fg *fakeGateway) Complete(_ context.Context, system string, history []ChatTurn, userMessage string) (string, int, error) {
	fg.gotSystem = system
	fg.gotHistory = history
	fg.gotMessage = userMessage
	if fg.err != nil {
		return "", 0, fg.err
	}
	return fg.reply, fg.tokens, nil
}

func (fg *fakeGateway) CompleteGreeting(_ context.Context, system, userMessage string) (string, error) {
	fg.gotSystem = system
	fg.gotMessage = userMessage
	if fg.greetingErr != nil {
		return "", fg.greetingErr
	}
	return fg.greeting, nil
}

// fakeInsightSink records the detached extraction call and signals it so
// tests can wait on the background task.
type fakeInsightSink struct {
	mu       sync.Mutex
	called   chan struct{}
	userID   uuid.UUID
	messages []*types.ChatMessage
}

func newFakeInsightSink() *fakeInsightSink {
	return &fakeInsightSink{called: make(chan struct{})}
}

func (fs *fakeInsightSink) Extract(_ []*types.ChatMessage, _ uuid.UUID) []*types.LearningInsight {
	return nil
}

func (fs *fakeInsightSink) ExtractAndSave(_ context.Context, userID uuid.UUID, messages []*types.ChatMessage) {
	fs.mu.Lock()
	fs.userID = userID
	fs.messages = messages
	fs.mu.Unlock()
	close(fs.called)
}

type fakeInsightRepo struct {
	mu       sync.Mutex
	insights map[uuid.UUID]*types.LearningInsight
}

func newFakeInsightRepo(insights ...*types.LearningInsight) *fakeInsightRepo {
	repo := &fakeInsightRepo{insights: make(map[uuid.UUID]*types.LearningInsight)}
	for _, insight := range insights {
		if insight.ID == uuid.Nil {
			insight.ID = uuid.New()
		}
		repo.insights[insight.ID] = insight
	}
	return repo
}

func (fr *fakeInsightRepo) Upsert(_ context.Context, _ *gorm.DB, insight *types.LearningInsight) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	for _, existing := range fr.insights {
		if existing.UserID == insight.UserID &&
			existing.Category == insight.Category &&
			existing.InsightKey == insight.InsightKey {
			existing.Value = insight.Value
			existing.Confidence = insight.Confidence
			existing.Source = insight.Source
			return nil
		}
	}
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	fr.insights[insight.ID] = insight
	return nil
}

func (fr *fakeInsightRepo) ListByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.LearningInsight, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	var out []*types.LearningInsight
	for _, insight := range fr.insights {
		if insight.UserID == userID {
			out = append(out, insight)
		}
	}
	return out, nil
}

func (fr *fakeInsightRepo) GetByIDForUser(_ context.Context, _ *gorm.DB, insightID, userID uuid.UUID) (*types.LearningInsight, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	insight, ok := fr.insights[insightID]
	if !ok || insight.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return insight, nil
}

func (fr *fakeInsightRepo) Update(_ context.Context, _ *gorm.DB, insight *types.LearningInsight) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.insights[insight.ID] = insight
	return nil
}

func (fr *fakeInsightRepo) Delete(_ context.Context, _ *gorm.DB, insightID, userID uuid.UUID) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if insight, ok := fr.insights[insightID]; ok && insight.UserID == userID {
		delete(fr.insights, insightID)
	}
	return nil
}

type fakeChatService struct {
	greeting    *Greeting
	greetingErr error
}

func (fc *fakeChatService) SendMessage(_ context.Context, _, _ uuid.UUID, _ string) (*ChatReply, error) {
	return nil, nil
}

func (fc *fakeChatService) GenerateGreeting(_ context.Context, _ types.SessionMode, _ string, _ int, _ string) (*Greeting, error) {
	if fc.greetingErr != nil {
		return nil, fc.greetingErr
	}
	return fc.greeting, nil
}
