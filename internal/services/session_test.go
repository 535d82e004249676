package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

type sessionFixture struct {
	service   SessionService
	sessions  *fakeSessionRepo
	messages  *fakeMessageRepo
	snapshots *fakeSnapshotRepo
	builder   *fakeContextBuilder
	chat      *fakeChatService
}

func newSessionFixture() *sessionFixture {
	log := logger.Nop()
	sessionRepo := newFakeSessionRepo()
	messageRepo := &fakeMessageRepo{}
	snapshotRepo := &fakeSnapshotRepo{}
	builder := &fakeContextBuilder{}
	chat := &fakeChatService{greeting: &Greeting{
		Text:             "Welcome to your study session.",
		Metadata:         &types.ResponseMetadata{Confidence: 0.8},
		FormattedContent: &types.FormattedContent{Text: "Welcome to your study session.", Format: "markdown"},
	}}
	service := NewSessionService(log, sessionRepo, messageRepo, snapshotRepo, builder, chat)
	return &sessionFixture{
		service:   service,
		sessions:  sessionRepo,
		messages:  messageRepo,
		snapshots: snapshotRepo,
		builder:   builder,
		chat:      chat,
	}
}

func TestSessionCreate_RejectsUnknownMode(t *testing.T) {
	fixture := newSessionFixture()

	_, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: "prophecy"})
	if apierr.From(err).Code != apierr.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestSessionCreate_DefaultsTitleFromMode(t *testing.T) {
	fixture := newSessionFixture()

	session, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeDebate})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(session.Title, "Debate Chat - ") {
		t.Fatalf("unexpected default title %q", session.Title)
	}
	if !session.IsActive {
		t.Fatalf("new sessions must start active")
	}
}

func TestSessionCreate_SnapshotsOnlyNonEmptyCategories(t *testing.T) {
	fixture := newSessionFixture()
	fixture.builder.userContext = &types.UserContext{
		Notes: []*types.Note{{ID: uuid.New(), Title: "a note"}},
	}

	session, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	snapshots, _ := fixture.snapshots.ListBySession(context.Background(), nil, session.ID)
	if len(snapshots) != 1 {
		t.Fatalf("expected a single snapshot, got %d", len(snapshots))
	}
	if snapshots[0].Type != types.SnapshotNotes {
		t.Fatalf("expected a notes snapshot, got %s", snapshots[0].Type)
	}
}

func TestSessionCreate_EmptyContextWritesNoSnapshots(t *testing.T) {
	fixture := newSessionFixture()
	fixture.builder.userContext = &types.UserContext{}

	session, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	snapshots, _ := fixture.snapshots.ListBySession(context.Background(), nil, session.ID)
	if len(snapshots) != 0 {
		t.Fatalf("expected no snapshots for an empty context, got %d", len(snapshots))
	}
}

func TestSessionCreate_SeedsGreetingWithZeroTokens(t *testing.T) {
	fixture := newSessionFixture()

	session, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	messages, _ := fixture.messages.ListBySession(context.Background(), nil, session.ID, repos.MessageFilter{})
	if len(messages) != 1 {
		t.Fatalf("expected the greeting message, got %d messages", len(messages))
	}
	greeting := messages[0]
	if greeting.Role != types.RoleAssistant {
		t.Fatalf("greeting must come from the assistant, got %s", greeting.Role)
	}
	if greeting.TokensUsed != 0 {
		t.Fatalf("greeting must record zero tokens, got %d", greeting.TokensUsed)
	}
	if greeting.Content != "Welcome to your study session." {
		t.Fatalf("unexpected greeting content %q", greeting.Content)
	}
}

func TestSessionCreate_GreetingFailureIsNonFatal(t *testing.T) {
	fixture := newSessionFixture()
	fixture.chat.greetingErr = apierr.AIUnavailable(errors.New("model offline"))

	session, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create should survive a greeting failure: %v", err)
	}
	messages, _ := fixture.messages.ListBySession(context.Background(), nil, session.ID, repos.MessageFilter{})
	if len(messages) != 0 {
		t.Fatalf("expected no greeting message, got %d", len(messages))
	}
}

func TestSessionCreate_SnapshotFailureIsNonFatal(t *testing.T) {
	fixture := newSessionFixture()
	fixture.builder.err = errors.New("profile store down")

	if _, err := fixture.service.Create(context.Background(), uuid.New(), CreateSessionInput{Mode: types.ModeStudy}); err != nil {
		t.Fatalf("create should survive a snapshot failure: %v", err)
	}
}

func TestSessionList_CarriesMessageCounts(t *testing.T) {
	fixture := newSessionFixture()
	userID := uuid.New()

	busy, err := fixture.service.Create(context.Background(), userID, CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	quiet, err := fixture.service.Create(context.Background(), userID, CreateSessionInput{Mode: types.ModeDebate})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		fixture.messages.Create(context.Background(), nil, []*types.ChatMessage{{
			SessionID: busy.ID,
			Role:      types.RoleUser,
			Content:   "turn",
		}})
	}

	summaries, err := fixture.service.List(context.Background(), userID, repos.SessionFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	counts := make(map[uuid.UUID]int64)
	for _, summary := range summaries {
		counts[summary.ID] = summary.MessageCount
	}
	// Each session starts with its seeded greeting.
	if counts[busy.ID] != 4 {
		t.Fatalf("expected 4 messages on the busy session, got %d", counts[busy.ID])
	}
	if counts[quiet.ID] != 1 {
		t.Fatalf("expected only the greeting on the quiet session, got %d", counts[quiet.ID])
	}
}

func TestSessionUpdate_RejectsEmptyTitle(t *testing.T) {
	fixture := newSessionFixture()
	userID := uuid.New()
	session, err := fixture.service.Create(context.Background(), userID, CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	empty := ""
	_, err = fixture.service.Update(context.Background(), userID, session.ID, UpdateSessionInput{Title: &empty})
	if apierr.From(err).Code != apierr.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestSessionUpdate_DeactivatesSession(t *testing.T) {
	fixture := newSessionFixture()
	userID := uuid.New()
	session, err := fixture.service.Create(context.Background(), userID, CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	active := false
	updated, err := fixture.service.Update(context.Background(), userID, session.ID, UpdateSessionInput{IsActive: &active})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("expected the session to be deactivated")
	}
}

func TestSessionDelete_UnknownSessionIsNotFound(t *testing.T) {
	fixture := newSessionFixture()

	err := fixture.service.Delete(context.Background(), uuid.New(), uuid.New())
	if apierr.From(err).Code != apierr.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionMessages_ReportsHasMore(t *testing.T) {
	fixture := newSessionFixture()
	userID := uuid.New()
	session, err := fixture.service.Create(context.Background(), userID, CreateSessionInput{Mode: types.ModeStudy})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for i := 0; i < 4; i++ {
		fixture.messages.Create(context.Background(), nil, []*types.ChatMessage{{
			SessionID: session.ID,
			Role:      types.RoleUser,
			Content:   "turn",
		}})
	}

	page, err := fixture.service.Messages(context.Background(), userID, session.ID, repos.MessageFilter{Limit: 2})
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("expected 5 total messages, got %d", page.Total)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("expected a 2-message page, got %d", len(page.Messages))
	}
	if !page.HasMore {
		t.Fatalf("expected has_more on a partial page")
	}

	rest, err := fixture.service.Messages(context.Background(), userID, session.ID, repos.MessageFilter{Limit: 10, Offset: 2})
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if rest.HasMore {
		t.Fatalf("expected has_more false on the final page")
	}
}
