package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
)

func completionBody(content string, totalTokens int) []byte {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
		"usage": map[string]any{"total_tokens": totalTokens},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func newTestClient(t *testing.T, baseURL string) OpenAIClient {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("OPENAI_MAX_RETRIES", "1")
	client, err := NewOpenAIClient(logger.Nop())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewOpenAIClient(logger.Nop()); err == nil {
		t.Fatalf("expected an error without OPENAI_API_KEY")
	}
}

func TestComplete_ReturnsContentAndUsage(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(completionBody("Grace means unmerited favor.", 77))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	reply, tokens, err := client.Complete(context.Background(), "system prompt",
		[]ChatTurn{{Role: "user", Content: "earlier"}}, "What is grace?")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if reply != "Grace means unmerited favor." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if tokens != 77 {
		t.Fatalf("expected 77 tokens, got %d", tokens)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if len(gotReq.Messages) != 3 {
		t.Fatalf("expected system + history + user, got %d messages", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[2].Content != "What is grace?" {
		t.Fatalf("messages assembled in the wrong order: %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != 2000 {
		t.Fatalf("expected max_tokens 2000, got %d", gotReq.MaxTokens)
	}
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(completionBody("second try", 10))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	reply, _, err := client.Complete(context.Background(), "system", nil, "hello")
	if err != nil {
		t.Fatalf("expected the retry to succeed: %v", err)
	}
	if reply != "second try" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestComplete_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, _, err := client.Complete(context.Background(), "system", nil, "hello")
	if apierr.From(err).Code != apierr.CodeAIUnavailable {
		t.Fatalf("expected ai_unavailable, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("a 400 must not be retried, got %d attempts", calls)
	}
}

func TestComplete_EmptyChoicesIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, _, err := client.Complete(context.Background(), "system", nil, "hello")
	if apierr.From(err).Code != apierr.CodeAIUnavailable {
		t.Fatalf("expected ai_unavailable for empty choices, got %v", err)
	}
}

func TestCompleteGreeting_UsesShorterBudget(t *testing.T) {
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(completionBody("Welcome!", 5))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	greeting, err := client.CompleteGreeting(context.Background(), "system", "greet the user")
	if err != nil {
		t.Fatalf("greeting failed: %v", err)
	}
	if greeting != "Welcome!" {
		t.Fatalf("unexpected greeting %q", greeting)
	}
	if gotReq.MaxTokens != 500 {
		t.Fatalf("expected max_tokens 500, got %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system + user, got %d messages", len(gotReq.Messages))
	}
}
