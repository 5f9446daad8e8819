package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Iron-Ham/debateai/internal/errors"
)

// noSleep replaces the backoff sleeper so retry tests run instantly.
func noSleep(c *Client) {
	c.sleep = func(context.Context, time.Duration) error { return nil }
}

func completionJSON(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestCompleteSuccess(t *testing.T) {
	var gotReq completionRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("I firmly believe the motion stands.")))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL + "/v1", APIKey: "test-key"})
	noSleep(client)

	history := []Message{
		{Role: RoleSystem, Content: "You are a debater."},
		{Role: RoleUser, Content: "Please provide your opening statement."},
	}
	got, err := client.Complete(context.Background(), "gpt-test", history, 300)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "I firmly believe the motion stands." {
		t.Errorf("content = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-test" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxCompletionTokens != 300 {
		t.Errorf("max_completion_tokens = %d, want 300", gotReq.MaxCompletionTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != RoleSystem {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestCompleteEmptyChoicesIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	noSleep(client)

	got, err := client.Complete(context.Background(), "m", nil, 100)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestCompleteRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(completionJSON("finally")))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	noSleep(client)

	got, err := client.Complete(context.Background(), "m", nil, 100)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "finally" {
		t.Errorf("content = %q", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestCompleteExhaustsRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	noSleep(client)

	_, err := client.Complete(context.Background(), "gpt-test", nil, 100)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != DefaultMaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, DefaultMaxAttempts)
	}

	var compErr *errors.CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("error type = %T, want *errors.CompletionError", err)
	}
	if compErr.Model != "gpt-test" || compErr.Attempts != DefaultMaxAttempts {
		t.Errorf("CompletionError = %+v", compErr)
	}
}

func TestCompleteBackoffDelays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	var delays []time.Duration
	client.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, _ = client.Complete(context.Background(), "m", nil, 100)

	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("slept %d times (%v), want %d", len(delays), delays, len(want))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestCompleteCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	noSleep(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, "m", nil, 100)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCompleteMissingAPIKeyOmitsHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(completionJSON("ok")))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	noSleep(client)

	if _, err := client.Complete(context.Background(), "m", nil, 0); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for local endpoints", gotAuth)
	}
}
