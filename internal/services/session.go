package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// CreateSessionInput carries the validated create-session request.
type CreateSessionInput struct {
	Mode             types.SessionMode
	Title            string
	ContextBookID    string
	ContextChapter   int
	ContextVersionID string
}

// UpdateSessionInput holds the mutable session fields. Nil means "leave
// unchanged".
type UpdateSessionInput struct {
	Title    *string
	IsActive *bool
}

// SessionSummary is a session plus its message count, for list views.
type SessionSummary struct {
	*types.ChatSession
	MessageCount int64 `json:"message_count"`
}

// SessionDetail is a session with its recent messages and snapshots.
type SessionDetail struct {
	*types.ChatSession
	Messages         []*types.ChatMessage     `json:"messages"`
	ContextSnapshots []*types.ContextSnapshot `json:"context_snapshots"`
	MessageCount     int                      `json:"message_count"`
}

// MessageList is one page of a session's conversation.
type MessageList struct {
	Messages []*types.ChatMessage `json:"messages"`
	Total    int64                `json:"total"`
	HasMore  bool                 `json:"has_more"`
}

type SessionService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateSessionInput) (*types.ChatSession, error)
	List(ctx context.Context, userID uuid.UUID, filter repos.SessionFilter) ([]*SessionSummary, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, input UpdateSessionInput) (*types.ChatSession, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
	Messages(ctx context.Context, userID, sessionID uuid.UUID, filter repos.MessageFilter) (*MessageList, error)
}

type sessionService struct {
	log        *logger.Logger
	sessions   repos.ChatSessionRepo
	messages   repos.ChatMessageRepo
	snapshots  repos.ContextSnapshotRepo
	contextSvc ContextBuilder
	chat       ChatService
}

func NewSessionService(
	log *logger.Logger,
	sessions repos.ChatSessionRepo,
	messages repos.ChatMessageRepo,
	snapshots repos.ContextSnapshotRepo,
	contextSvc ContextBuilder,
	chat ChatService,
) SessionService {
	return &sessionService{
		log:        log.With("service", "SessionService"),
		sessions:   sessions,
		messages:   messages,
		snapshots:  snapshots,
		contextSvc: contextSvc,
		chat:       chat,
	}
}

// Create persists the session, captures a point-in-time snapshot of the
// user's study data, and seeds the conversation with a generated greeting.
// Snapshot and greeting failures are non-fatal; the session stands.
func (ss *sessionService) Create(ctx context.Context, userID uuid.UUID, input CreateSessionInput) (*types.ChatSession, error) {
	if !input.Mode.Valid() {
		return nil, apierr.Validation("unknown session mode %q", input.Mode)
	}

	title := input.Title
	if title == "" {
		title = fmt.Sprintf("%s Chat - %s", modeTitle(input.Mode), time.Now().Format("1/2/2006"))
	}

	session, err := ss.sessions.Create(ctx, nil, &types.ChatSession{
		UserID:           userID,
		Mode:             input.Mode,
		Title:            title,
		ContextBookID:    input.ContextBookID,
		ContextChapter:   input.ContextChapter,
		ContextVersionID: input.ContextVersionID,
		IsActive:         true,
		LastMessageAt:    time.Now(),
	})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("create chat session: %w", err))
	}

	if err := ss.captureSnapshots(ctx, session.ID, userID); err != nil {
		ss.log.Warn("Failed to capture context snapshots", "session_id", session.ID, "error", err)
	}

	if err := ss.seedGreeting(ctx, session); err != nil {
		ss.log.Warn("Failed to seed greeting message", "session_id", session.ID, "error", err)
	}

	ss.log.Info("Chat session created", "session_id", session.ID, "user_id", userID, "mode", session.Mode)
	return session, nil
}

func (ss *sessionService) List(ctx context.Context, userID uuid.UUID, filter repos.SessionFilter) ([]*SessionSummary, error) {
	sessions, err := ss.sessions.ListByUser(ctx, nil, userID, filter)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("list chat sessions: %w", err))
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}
	counts, err := ss.messages.CountBySessions(ctx, nil, sessionIDs)
	if err != nil {
		ss.log.Warn("Failed to count session messages", "user_id", userID, "error", err)
		counts = nil
	}

	summaries := make([]*SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, &SessionSummary{ChatSession: session, MessageCount: counts[session.ID]})
	}
	return summaries, nil
}

func (ss *sessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := ss.sessions.GetByIDForUser(ctx, nil, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat session not found")
		}
		return nil, apierr.Upstream(fmt.Errorf("load chat session: %w", err))
	}

	messages, err := ss.messages.ListBySession(ctx, nil, sessionID, repos.MessageFilter{Limit: historyWindow})
	if err != nil {
		ss.log.Warn("Failed to load session messages", "session_id", sessionID, "error", err)
		messages = nil
	}

	snapshots, err := ss.snapshots.ListBySession(ctx, nil, sessionID)
	if err != nil {
		ss.log.Warn("Failed to load context snapshots", "session_id", sessionID, "error", err)
		snapshots = nil
	}

	return &SessionDetail{
		ChatSession:      session,
		Messages:         messages,
		ContextSnapshots: snapshots,
		MessageCount:     len(messages),
	}, nil
}

func (ss *sessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, input UpdateSessionInput) (*types.ChatSession, error) {
	session, err := ss.sessions.GetByIDForUser(ctx, nil, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat session not found")
		}
		return nil, apierr.Upstream(fmt.Errorf("load chat session: %w", err))
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apierr.Validation("session title cannot be empty")
		}
		session.Title = *input.Title
	}
	if input.IsActive != nil {
		session.IsActive = *input.IsActive
	}

	if err := ss.sessions.Update(ctx, nil, session); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("update chat session: %w", err))
	}
	return session, nil
}

func (ss *sessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := ss.sessions.GetByIDForUser(ctx, nil, sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("chat session not found")
		}
		return apierr.Upstream(fmt.Errorf("load chat session: %w", err))
	}
	if err := ss.sessions.Delete(ctx, nil, sessionID, userID); err != nil {
		return apierr.Upstream(fmt.Errorf("delete chat session: %w", err))
	}
	ss.log.Info("Chat session deleted", "session_id", sessionID, "user_id", userID)
	return nil
}

// Messages returns one page of conversation for an owned session, oldest
// first, with the total count and a has-more flag for the pager.
func (ss *sessionService) Messages(ctx context.Context, userID, sessionID uuid.UUID, filter repos.MessageFilter) (*MessageList, error) {
	if _, err := ss.sessions.GetByIDForUser(ctx, nil, sessionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat session not found")
		}
		return nil, apierr.Upstream(fmt.Errorf("load chat session: %w", err))
	}

	messages, err := ss.messages.ListBySession(ctx, nil, sessionID, filter)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("list session messages: %w", err))
	}
	total, err := ss.messages.CountBySession(ctx, nil, sessionID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("count session messages: %w", err))
	}

	return &MessageList{
		Messages: messages,
		Total:    total,
		HasMore:  int64(filter.Offset+len(messages)) < total,
	}, nil
}

// captureSnapshots copies the non-empty categories of the user's study
// data onto the session. Empty categories write no rows.
func (ss *sessionService) captureSnapshots(ctx context.Context, sessionID, userID uuid.UUID) error {
	userContext, err := ss.contextSvc.BuildUserContext(ctx, userID)
	if err != nil {
		return err
	}

	categories := []struct {
		snapshotType types.SnapshotType
		data         any
		empty        bool
	}{
		{types.SnapshotNotes, userContext.Notes, len(userContext.Notes) == 0},
		{types.SnapshotHighlights, userContext.Highlights, len(userContext.Highlights) == 0},
		{types.SnapshotBookmarks, userContext.Bookmarks, len(userContext.Bookmarks) == 0},
		{types.SnapshotReadingProgress, userContext.ReadingProgress, userContext.ReadingProgress == nil},
	}

	var snapshots []*types.ContextSnapshot
	for _, category := range categories {
		if category.empty {
			continue
		}
		data, err := json.Marshal(category.data)
		if err != nil {
			ss.log.Warn("Failed to marshal context snapshot", "snapshot_type", category.snapshotType, "error", err)
			continue
		}
		snapshots = append(snapshots, &types.ContextSnapshot{
			SessionID: sessionID,
			Type:      category.snapshotType,
			Data:      data,
		})
	}

	if len(snapshots) == 0 {
		return nil
	}
	if _, err := ss.snapshots.Create(ctx, nil, snapshots); err != nil {
		return fmt.Errorf("save context snapshots: %w", err)
	}
	return nil
}

func (ss *sessionService) seedGreeting(ctx context.Context, session *types.ChatSession) error {
	greeting, err := ss.chat.GenerateGreeting(ctx, session.Mode, session.ContextBookID, session.ContextChapter, session.ContextVersionID)
	if err != nil {
		return err
	}

	metadataJSON, err := json.Marshal(greeting.Metadata)
	if err != nil {
		return fmt.Errorf("marshal greeting metadata: %w", err)
	}
	formattedJSON, err := json.Marshal(greeting.FormattedContent)
	if err != nil {
		return fmt.Errorf("marshal greeting content: %w", err)
	}

	_, err = ss.messages.Create(ctx, nil, []*types.ChatMessage{{
		SessionID:        session.ID,
		Role:             types.RoleAssistant,
		Content:          greeting.Text,
		Metadata:         metadataJSON,
		FormattedContent: formattedJSON,
		TokensUsed:       0,
	}})
	return err
}

// modeTitle renders a mode for the default session title.
func modeTitle(mode types.SessionMode) string {
	switch mode {
	case types.ModeNoteTaker:
		return "Note-taker"
	case types.ModeStudy:
		return "Study"
	case types.ModeDebate:
		return "Debate"
	case types.ModeExplainer:
		return "Explainer"
	default:
		return "Custom"
	}
}
