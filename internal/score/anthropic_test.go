package score

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("anthropic-version header missing")
		}
		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "scored"}},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", "test-model")
	c.BaseURL = srv.URL

	got, err := c.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "scored" {
		t.Errorf("Complete = %q", got)
	}
}

func TestAnthropicCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "m")
	c.BaseURL = srv.URL

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("want error on http 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "invalid_request_error", "message": "bad prompt"},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "m")
	c.BaseURL = srv.URL

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "invalid_request_error") {
		t.Errorf("err = %v, want api error type", err)
	}
}

func TestAnthropicCompleteNoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	}))
	defer srv.Close()

	c := NewAnthropicClient("k", "m")
	c.BaseURL = srv.URL

	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("want error when no text block present")
	}
}
