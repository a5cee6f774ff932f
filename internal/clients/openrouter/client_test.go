package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("OPENROUTER_BASE_URL", baseURL)
	t.Setenv("OPENROUTER_MAX_RETRIES", "2")

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := NewClient(log)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func chatPayload(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestGenerateTextSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if req.Temperature != 0.7 {
			t.Errorf("temperature = %v, want 0.7", req.Temperature)
		}
		_ = json.NewEncoder(w).Encode(chatPayload("hello"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateText(context.Background(), "sys", "usr", 0.7)
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
}

func TestGenerateTextRetriesOnServerError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(chatPayload("recovered"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateText(context.Background(), "sys", "usr", 0)
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("content = %q, want %q", got, "recovered")
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestGenerateTextDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "sys", "usr", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	var httpErr *openRouterHTTPError
	if !errors.As(err, &httpErr) || httpErr.HTTPStatusCode() != http.StatusBadRequest {
		t.Fatalf("expected typed 400 error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestGenerateTextNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GenerateText(context.Background(), "sys", "usr", 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
