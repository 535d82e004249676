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
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/prompts"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// historyWindow caps how much prior conversation rides along on each turn.
const historyWindow = 50

// insightDeadline bounds the detached insight-extraction task.
const insightDeadline = 30 * time.Second

// ChatReply is what a successful exchange returns to the handler layer.
type ChatReply struct {
	Response         string                  `json:"response"`
	Metadata         *types.ResponseMetadata `json:"metadata"`
	FormattedContent *types.FormattedContent `json:"formatted_content"`
	TokensUsed       int                     `json:"tokens_used"`
}

// Greeting is the auto-generated first assistant message of a session.
type Greeting struct {
	Text             string
	Metadata         *types.ResponseMetadata
	FormattedContent *types.FormattedContent
}

type ChatService interface {
	SendMessage(ctx context.Context, userID, sessionID uuid.UUID, userMessage string) (*ChatReply, error)
	GenerateGreeting(ctx context.Context, mode types.SessionMode, book string, chapter int, version string) (*Greeting, error)
}

type chatService struct {
	log        *logger.Logger
	sessions   repos.ChatSessionRepo
	messages   repos.ChatMessageRepo
	contextSvc ContextBuilder
	gateway    OpenAIClient
	annotator  Annotator
	insights   InsightExtractor
	background *BackgroundTasks
}

func NewChatService(
	log *logger.Logger,
	sessions repos.ChatSessionRepo,
	messages repos.ChatMessageRepo,
	contextSvc ContextBuilder,
	gateway OpenAIClient,
	annotator Annotator,
	insights InsightExtractor,
	background *BackgroundTasks,
) ChatService {
	return &chatService{
		log:        log.With("service", "ChatService"),
		sessions:   sessions,
		messages:   messages,
		contextSvc: contextSvc,
		gateway:    gateway,
		annotator:  annotator,
		insights:   insights,
		background: background,
	}
}

// SendMessage runs one full chat turn: ownership check, context assembly,
// prompt composition, the model call, annotation, persistence of both
// turns, and a detached insight-extraction pass.
func (cs *chatService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, userMessage string) (*ChatReply, error) {
	session, err := cs.sessions.GetByIDForUser(ctx, nil, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("chat session not found")
		}
		return nil, apierr.Upstream(fmt.Errorf("load chat session: %w", err))
	}
	if !session.IsActive {
		return nil, apierr.Validation("chat session is no longer active")
	}

	userContext, err := cs.contextSvc.BuildUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := cs.messages.ListBySession(ctx, nil, sessionID, repos.MessageFilter{Limit: historyWindow})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("load conversation history: %w", err))
	}

	systemPrompt := prompts.Compose(session.Mode, userContext)

	turns := make([]ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ChatTurn{Role: string(m.Role), Content: m.Content})
	}

	reply, tokensUsed, err := cs.gateway.Complete(ctx, systemPrompt, turns, userMessage)
	if err != nil {
		return nil, err
	}

	metadata, formatted := cs.annotator.Annotate(reply)

	saved, err := cs.saveExchange(ctx, sessionID, userMessage, reply, metadata, formatted, tokensUsed)
	if err != nil {
		return nil, err
	}

	if err := cs.sessions.TouchLastMessage(ctx, nil, sessionID, time.Now()); err != nil {
		cs.log.Warn("Failed to update session timestamp", "session_id", sessionID, "error", err)
	}

	// Insight extraction is an enrichment; it runs behind the response on
	// the full conversation including the turn just saved.
	conversation := append(history, saved...)
	cs.background.Go("insight-extraction", func(taskCtx context.Context) {
		taskCtx, cancel := context.WithTimeout(taskCtx, insightDeadline)
		defer cancel()
		cs.insights.ExtractAndSave(taskCtx, userID, conversation)
	})

	return &ChatReply{
		Response:         reply,
		Metadata:         metadata,
		FormattedContent: formatted,
		TokensUsed:       tokensUsed,
	}, nil
}

// GenerateGreeting produces the first assistant message for a new session.
// The greeting costs no user-visible tokens; callers persist it with a
// zero token count.
func (cs *chatService) GenerateGreeting(ctx context.Context, mode types.SessionMode, book string, chapter int, version string) (*Greeting, error) {
	greeting, err := cs.gateway.CompleteGreeting(ctx, prompts.GreetingSystemPrompt, prompts.GreetingPrompt(mode, book, chapter, version))
	if err != nil {
		return nil, err
	}
	metadata, formatted := cs.annotator.Annotate(greeting)
	return &Greeting{Text: greeting, Metadata: metadata, FormattedContent: formatted}, nil
}

// saveExchange persists the user turn and the assistant turn as two
// independent appends. The user turn always records zero tokens; usage is
// attributed to the assistant turn.
func (cs *chatService) saveExchange(
	ctx context.Context,
	sessionID uuid.UUID,
	userMessage, reply string,
	metadata *types.ResponseMetadata,
	formatted *types.FormattedContent,
	tokensUsed int,
) ([]*types.ChatMessage, error) {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("marshal response metadata: %w", err))
	}
	formattedJSON, err := json.Marshal(formatted)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("marshal formatted content: %w", err))
	}

	userTurn := &types.ChatMessage{
		SessionID:  sessionID,
		Role:       types.RoleUser,
		Content:    userMessage,
		TokensUsed: 0,
	}
	assistantTurn := &types.ChatMessage{
		SessionID:        sessionID,
		Role:             types.RoleAssistant,
		Content:          reply,
		Metadata:         metadataJSON,
		FormattedContent: formattedJSON,
		TokensUsed:       tokensUsed,
	}

	saved, err := cs.messages.Create(ctx, nil, []*types.ChatMessage{userTurn, assistantTurn})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("save chat exchange: %w", err))
	}
	return saved, nil
}
